package ratelimit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int) *Limiter {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "rate-limit.json"))
	return New(context.Background(), Config{MaxRequestsPerDay: max, Window: 24 * time.Hour}, store)
}

func TestCheck_QuotaMonotonicity(t *testing.T) {
	l := newTestLimiter(t, 50)
	ctx := context.Background()

	for i := 1; i <= 50; i++ {
		res := l.Check(ctx, "1.2.3.4")
		require.True(t, res.Allowed, "request %d should be allowed", i)
		assert.Equal(t, i, res.Current)
		assert.Equal(t, 50-i, res.Remaining)
	}

	res := l.Check(ctx, "1.2.3.4")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, 50, res.Current)
	assert.Greater(t, res.ResetTime, time.Now().UnixMilli())
}

func TestCheck_DenialDoesNotIncrement(t *testing.T) {
	l := newTestLimiter(t, 2)
	ctx := context.Background()

	l.Check(ctx, "5.6.7.8")
	l.Check(ctx, "5.6.7.8")

	for i := 0; i < 5; i++ {
		res := l.Check(ctx, "5.6.7.8")
		assert.False(t, res.Allowed)
		assert.Equal(t, 2, res.Current)
	}
}

func TestCheck_DayRollover(t *testing.T) {
	l := newTestLimiter(t, 3)
	ctx := context.Background()

	yesterday := time.Date(2026, 8, 29, 23, 50, 0, 0, time.UTC)
	l.now = func() time.Time { return yesterday }

	// Exhaust yesterday's quota.
	for i := 0; i < 3; i++ {
		require.True(t, l.Check(ctx, "1.2.3.4").Allowed)
	}
	require.False(t, l.Check(ctx, "1.2.3.4").Allowed)

	// First call of the new day resets.
	l.now = func() time.Time { return yesterday.Add(time.Hour) }
	res := l.Check(ctx, "1.2.3.4")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Current)
	assert.Equal(t, 2, res.Remaining)
}

func TestStatus_NeverMutates(t *testing.T) {
	l := newTestLimiter(t, 10)
	ctx := context.Background()

	l.Check(ctx, "1.2.3.4")
	l.Check(ctx, "1.2.3.4")

	for i := 0; i < 20; i++ {
		st := l.Status("1.2.3.4")
		assert.Equal(t, 2, st.Current)
		assert.Equal(t, 8, st.Remaining)
		assert.Equal(t, 10, st.Limit)
	}

	res := l.Check(ctx, "1.2.3.4")
	assert.Equal(t, 3, res.Current)
}

func TestStatus_UnseenIdentity(t *testing.T) {
	l := newTestLimiter(t, 50)

	st := l.Status("9.9.9.9")
	assert.Equal(t, 0, st.Current)
	assert.Equal(t, 50, st.Remaining)
	assert.Equal(t, 50, st.Limit)
	assert.Greater(t, st.ResetTime, int64(0))
}

func TestCheck_IdentitiesIndependent(t *testing.T) {
	l := newTestLimiter(t, 1)
	ctx := context.Background()

	require.True(t, l.Check(ctx, "1.1.1.1").Allowed)
	require.False(t, l.Check(ctx, "1.1.1.1").Allowed)
	assert.True(t, l.Check(ctx, "2.2.2.2").Allowed)
}

func TestCheck_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rate-limit.json")
	cfg := Config{MaxRequestsPerDay: 5, Window: 24 * time.Hour}
	ctx := context.Background()

	l1 := New(ctx, cfg, NewFileStore(path))
	l1.Check(ctx, "1.2.3.4")
	l1.Check(ctx, "1.2.3.4")
	l1.Check(ctx, "1.2.3.4")

	// New limiter over the same file picks up the count.
	l2 := New(ctx, cfg, NewFileStore(path))
	st := l2.Status("1.2.3.4")
	assert.Equal(t, 3, st.Current)
	assert.Equal(t, 2, st.Remaining)
}

func TestCleanup_PurgesExpiredEntries(t *testing.T) {
	l := newTestLimiter(t, 5)
	ctx := context.Background()

	old := time.Now().Add(-25 * time.Hour)
	oldDay := old.UTC().Format("2006-01-02")
	l.entries["1.2.3.4-"+oldDay] = Entry{
		IP: "1.2.3.4", Date: oldDay, Count: 5,
		FirstRequest: old.UnixMilli(), LastRequest: old.UnixMilli(),
	}
	l.Check(ctx, "5.6.7.8")

	l.cleanup(ctx, time.Now().UnixMilli())

	_, stale := l.entries["1.2.3.4-"+oldDay]
	assert.False(t, stale, "expired entry should be purged")
	assert.Equal(t, 1, l.Status("5.6.7.8").Current, "live entry should survive cleanup")
}

type failingStore struct{}

func (failingStore) Load(context.Context) (map[string]Entry, error) {
	return nil, errors.New("store down")
}
func (failingStore) Save(context.Context, string, Entry) error { return errors.New("store down") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("store down") }
func (failingStore) Ping(context.Context) error                { return errors.New("store down") }

func TestCheck_StoreFailureDoesNotFailRequest(t *testing.T) {
	l := New(context.Background(), Config{MaxRequestsPerDay: 2, Window: 24 * time.Hour}, failingStore{})
	ctx := context.Background()

	// Counting continues in memory even though nothing persists.
	assert.True(t, l.Check(ctx, "1.2.3.4").Allowed)
	assert.True(t, l.Check(ctx, "1.2.3.4").Allowed)
	assert.False(t, l.Check(ctx, "1.2.3.4").Allowed)
}
