package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"hiresignal-engine/internal/ats"
	"hiresignal-engine/internal/careers"
	"hiresignal-engine/internal/config"
	"hiresignal-engine/internal/events"
	"hiresignal-engine/internal/hiring"
	"hiresignal-engine/internal/httpapi"
	"hiresignal-engine/internal/pipeline"
	"hiresignal-engine/internal/resolve"
	"hiresignal-engine/internal/scheduler"
	"hiresignal-engine/internal/store"
	"hiresignal-engine/internal/web"
)

func main() {
	dataDir := os.Getenv("HIRESIGNAL_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// one engine per data dir; two writers would fight over the cache db
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine already holds %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	raw, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, validation := config.NormalizeAndValidate(raw)
	for _, warn := range validation.Warnings {
		log.Printf("[config] warning: %s", warn)
	}
	if !validation.OK() {
		for _, e := range validation.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}

	db, err := store.Open(filepath.Join(dataDir, "hiresignal.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	cache := store.NewDomainCache(db)

	limiter := web.NewHostLimiter(cfg.Limits.HostRPS, cfg.Limits.HostBurst)
	// the search host stays at 1 qps no matter how host_rps is tuned
	limiter.SetHostRate("duckduckgo.com", 1, 1)
	client := web.NewClient(time.Duration(cfg.Limits.RequestTimeoutSeconds)*time.Second, limiter)

	resolver := resolve.New(client, cache, cfg.Resolver.LowSignalHosts, cfg.Resolver.GuessTLDs)
	locator := careers.New(client, cfg.Hiring.CareersTokens)
	probe := ats.New(client)
	classifier := hiring.NewClassifier(cfg.Hiring.TechKeywords)
	detector := hiring.NewDetector(locator, probe, classifier, hiring.TierPolicy{
		RecentDays: cfg.Hiring.RecentDays,
		TierAMin:   cfg.Hiring.TierAMin,
	})
	runner := pipeline.NewRunner(resolver, detector,
		cfg.Limits.MaxCompanies,
		cfg.Limits.Workers,
		time.Duration(cfg.Limits.RunTimeoutSeconds)*time.Second,
	)

	hub := events.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scheduler.Every(ctx,
		time.Duration(cfg.Cache.PruneIntervalMinutes)*time.Minute,
		"cache-prune",
		func(ctx context.Context) error {
			n, err := cache.PruneStale(ctx, time.Duration(cfg.Cache.TTLDays)*24*time.Hour)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Printf("[cache-prune] removed %d stale domains", n)
			}
			return nil
		})

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:     hub,
		Run:     runner.Run,
		Resolve: resolver.Resolve,
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
