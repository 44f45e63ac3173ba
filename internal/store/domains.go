package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"hiresignal-engine/internal/domain"
)

// DomainCache persists resolved domains between runs so re-processed
// companies skip the network. Satisfies resolve.Cache.
type DomainCache struct {
	db *DB
}

func NewDomainCache(db *DB) *DomainCache { return &DomainCache{db: db} }

func (c *DomainCache) Get(ctx context.Context, company string) (domain.ResolvedDomain, bool, error) {
	key := normalizeCompanyKey(company)
	if key == "" {
		return domain.ResolvedDomain{}, false, nil
	}

	var d domain.ResolvedDomain
	err := c.db.Pool.QueryRowContext(ctx,
		`SELECT domain, confidence, source FROM resolved_domains WHERE company = ? LIMIT 1;`,
		key,
	).Scan(&d.Domain, &d.Confidence, &d.Source)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ResolvedDomain{}, false, nil
	}
	if err != nil {
		return domain.ResolvedDomain{}, false, err
	}
	return d, d.Domain != "", nil
}

func (c *DomainCache) Put(ctx context.Context, company string, d domain.ResolvedDomain) error {
	key := normalizeCompanyKey(company)
	if key == "" || d.Domain == "" {
		return nil
	}

	_, err := c.db.Pool.ExecContext(ctx, `
INSERT INTO resolved_domains(company, domain, confidence, source, fetched_at)
VALUES(?,?,?,?,?)
ON CONFLICT(company) DO UPDATE SET
  domain = excluded.domain,
  confidence = excluded.confidence,
  source = excluded.source,
  fetched_at = excluded.fetched_at;
`, key, d.Domain, d.Confidence, string(d.Source), time.Now().UTC().Format(time.RFC3339))

	return err
}

// PruneStale drops cache rows older than ttl so domain changes eventually get
// re-resolved. Returns the number of rows removed.
func (c *DomainCache) PruneStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl).Format(time.RFC3339)
	res, err := c.db.Pool.ExecContext(ctx,
		`DELETE FROM resolved_domains WHERE fetched_at < ?;`, cutoff)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
