package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiresignal-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDomainCacheRoundTrip(t *testing.T) {
	cache := NewDomainCache(openTestDB(t))
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "Acme Robotics")
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.ResolvedDomain{Domain: "acme-robotics.com", Confidence: 0.92, Source: domain.SourcePressRelease}
	require.NoError(t, cache.Put(ctx, "Acme Robotics", want))

	// company key is case/whitespace-insensitive
	got, ok, err := cache.Get(ctx, "  acme   robotics ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestDomainCacheUpsertReplaces(t *testing.T) {
	cache := NewDomainCache(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "acme", domain.ResolvedDomain{Domain: "old.com", Confidence: 0.3, Source: domain.SourceGuess}))
	require.NoError(t, cache.Put(ctx, "acme", domain.ResolvedDomain{Domain: "acme.com", Confidence: 1, Source: domain.SourceGiven}))

	got, ok, err := cache.Get(ctx, "acme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "acme.com", got.Domain)
	assert.Equal(t, domain.SourceGiven, got.Source)
}

func TestDomainCacheIgnoresEmptyKeys(t *testing.T) {
	cache := NewDomainCache(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "", domain.ResolvedDomain{Domain: "x.com"}))
	require.NoError(t, cache.Put(ctx, "acme", domain.ResolvedDomain{}))

	_, ok, err := cache.Get(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPruneStale(t *testing.T) {
	db := openTestDB(t)
	cache := NewDomainCache(db)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "fresh", domain.ResolvedDomain{Domain: "fresh.com", Confidence: 1, Source: domain.SourceGiven}))

	// backdate one row past the ttl
	old := time.Now().UTC().Add(-48 * time.Hour).Format(time.RFC3339)
	_, err := db.Pool.ExecContext(ctx, `
INSERT INTO resolved_domains(company, domain, confidence, source, fetched_at)
VALUES('stale','stale.com',0.6,'search',?);`, old)
	require.NoError(t, err)

	n, err := cache.PruneStale(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, ok, err := cache.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = cache.Get(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)
}
