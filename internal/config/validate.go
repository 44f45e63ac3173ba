package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and dedupes list-valued policy, fills defaults
// for anything unset, and reports hard errors plus tuning warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Resolver.LowSignalHosts = trimList(out.Resolver.LowSignalHosts)
	out.Resolver.GuessTLDs = trimList(out.Resolver.GuessTLDs)
	out.Hiring.TechKeywords = trimList(out.Hiring.TechKeywords)
	out.Hiring.CareersTokens = trimList(out.Hiring.CareersTokens)

	// defaults
	if out.Hiring.RecentDays == 0 {
		out.Hiring.RecentDays = 14
	}
	if out.Hiring.TierAMin == 0 {
		out.Hiring.TierAMin = 3
	}
	if out.Limits.MaxCompanies == 0 {
		out.Limits.MaxCompanies = 20
	}
	if out.Limits.Workers == 0 {
		out.Limits.Workers = 4
	}
	if out.Limits.RequestTimeoutSeconds == 0 {
		out.Limits.RequestTimeoutSeconds = 12
	}
	if out.Limits.RunTimeoutSeconds == 0 {
		out.Limits.RunTimeoutSeconds = 300
	}
	if out.Limits.HostRPS == 0 {
		out.Limits.HostRPS = 1.0
	}
	if out.Limits.HostBurst == 0 {
		out.Limits.HostBurst = 2
	}
	if out.Cache.TTLDays == 0 {
		out.Cache.TTLDays = 30
	}
	if out.Cache.PruneIntervalMinutes == 0 {
		out.Cache.PruneIntervalMinutes = 60
	}

	// ---- Validation rules ----

	if len(out.Hiring.TechKeywords) == 0 {
		res.addErr("hiring.tech_keywords is empty; classifier would drop every posting")
	}
	if len(out.Hiring.CareersTokens) == 0 {
		res.addErr("hiring.careers_tokens is empty; careers pages would never be found")
	}
	if out.Hiring.RecentDays < 0 {
		res.addErr("hiring.recent_days must be >= 0")
	}
	if out.Hiring.TierAMin < 1 {
		res.addErr("hiring.tier_a_min must be >= 1")
	}

	if out.Limits.MaxCompanies < 1 {
		res.addErr("limits.max_companies must be >= 1")
	}
	if out.Limits.Workers < 1 {
		res.addErr("limits.workers must be >= 1")
	}
	if out.Limits.HostRPS <= 0 {
		res.addErr("limits.host_rps must be > 0")
	} else if out.Limits.HostRPS > 2 {
		res.addWarn("limits.host_rps is %.1f; search engines may block anything above ~1 req/s.", out.Limits.HostRPS)
	}
	if out.Limits.Workers > out.Limits.MaxCompanies {
		res.addWarn("limits.workers (%d) exceeds limits.max_companies (%d); extra workers stay idle.",
			out.Limits.Workers, out.Limits.MaxCompanies)
	}

	if len(out.Resolver.GuessTLDs) == 0 {
		res.addWarn("resolver.guess_tlds is empty; the guess fallback will always fail.")
	}
	for _, t := range out.Resolver.GuessTLDs {
		if !strings.HasPrefix(t, ".") {
			res.addErr("resolver.guess_tlds entry %q must start with a dot", t)
		}
	}
	if len(out.Resolver.LowSignalHosts) == 0 {
		res.addWarn("resolver.low_signal_hosts is empty; social links may be resolved as company domains.")
	}

	return out, res
}
