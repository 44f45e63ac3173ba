package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiresignal-engine/internal/domain"
)

type fakeResolver struct {
	mu       sync.Mutex
	calls    int
	inFlight int32
	maxSeen  int32
	delay    time.Duration
	result   map[string]domain.ResolvedDomain
}

func (f *fakeResolver) Resolve(ctx context.Context, rec domain.CompanyRecord) (domain.ResolvedDomain, bool) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		prev := atomic.LoadInt32(&f.maxSeen)
		if cur <= prev || atomic.CompareAndSwapInt32(&f.maxSeen, prev, cur) {
			break
		}
	}

	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.ResolvedDomain{}, false
		case <-time.After(f.delay):
		}
	}

	d, ok := f.result[rec.Name]
	return d, ok
}

type fakeDetector struct {
	signal domain.HiringSignal
}

func (f fakeDetector) Detect(context.Context, string) domain.HiringSignal {
	return f.signal
}

func TestRunBatchCap(t *testing.T) {
	res := &fakeResolver{result: map[string]domain.ResolvedDomain{}}
	r := NewRunner(res, fakeDetector{}, 2, 2, time.Minute)

	records := []domain.CompanyRecord{
		{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
	}
	out := r.Run(context.Background(), records)

	assert.Len(t, out, 2)
	assert.Equal(t, 2, res.calls)
}

func TestRunEmptyNameFailsAlone(t *testing.T) {
	res := &fakeResolver{result: map[string]domain.ResolvedDomain{
		"ok co": {Domain: "ok.co", Confidence: 1, Source: domain.SourceGiven},
	}}
	det := fakeDetector{signal: domain.HiringSignal{Tier: domain.TierB, TechRoleCount: 1}}
	r := NewRunner(res, det, 10, 2, time.Minute)

	out := r.Run(context.Background(), []domain.CompanyRecord{
		{Name: ""},
		{Name: "ok co"},
	})

	require.Len(t, out, 2)
	assert.NotEmpty(t, out[0].Error)
	assert.Nil(t, out[0].Signal)

	assert.Empty(t, out[1].Error)
	require.NotNil(t, out[1].Domain)
	assert.Equal(t, "ok.co", out[1].Domain.Domain)
	require.NotNil(t, out[1].Signal)
	assert.Equal(t, domain.TierB, out[1].Signal.Tier)
}

func TestRunExhaustedResolutionIsTierNone(t *testing.T) {
	res := &fakeResolver{result: map[string]domain.ResolvedDomain{}}
	r := NewRunner(res, fakeDetector{}, 10, 2, time.Minute)

	out := r.Run(context.Background(), []domain.CompanyRecord{{Name: "ghost"}})

	require.Len(t, out, 1)
	assert.Nil(t, out[0].Domain)
	require.NotNil(t, out[0].Signal)
	assert.Equal(t, domain.TierNone, out[0].Signal.Tier)
	assert.Zero(t, out[0].Signal.TechRoleCount)
	assert.Empty(t, out[0].Error)
}

func TestRunWorkerBound(t *testing.T) {
	res := &fakeResolver{
		delay:  20 * time.Millisecond,
		result: map[string]domain.ResolvedDomain{},
	}
	r := NewRunner(res, fakeDetector{}, 20, 2, time.Minute)

	records := make([]domain.CompanyRecord, 8)
	for i := range records {
		records[i] = domain.CompanyRecord{Name: string(rune('a' + i))}
	}
	r.Run(context.Background(), records)

	assert.LessOrEqual(t, atomic.LoadInt32(&res.maxSeen), int32(2))
}

func TestRunDeadlineMarksInconclusive(t *testing.T) {
	res := &fakeResolver{
		delay:  time.Second,
		result: map[string]domain.ResolvedDomain{},
	}
	r := NewRunner(res, fakeDetector{}, 10, 4, 30*time.Millisecond)

	out := r.Run(context.Background(), []domain.CompanyRecord{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	})

	require.Len(t, out, 3) // reported, not dropped
	for _, o := range out {
		assert.True(t, o.Inconclusive, "company %s", o.Company)
	}
}
