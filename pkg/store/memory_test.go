package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardenlock/warden/pkg/types"
)

func TestMemoryTryCreate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	token, err := m.TryCreate(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), token)

	// Verify record was stored
	rec, held, err := m.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, held, "record should exist")
	assert.Equal(t, "client-1", rec.Owner)
	assert.Equal(t, uint64(1), rec.FencingToken)
	assert.Equal(t, 10*time.Second, rec.TTL)
}

func TestMemoryTryCreateInvalidTTL(t *testing.T) {
	m := NewMemory()

	_, err := m.TryCreate(context.Background(), "orders", "client-1", 0)
	assert.ErrorIs(t, err, types.ErrInvalidTTL)
}

func TestMemoryTryCreateBusy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)

	_, err = m.TryCreate(ctx, "orders", "client-2", 10*time.Second)
	assert.ErrorIs(t, err, types.ErrBusy)

	// The holder itself cannot double-acquire either
	_, err = m.TryCreate(ctx, "orders", "client-1", 10*time.Second)
	assert.ErrorIs(t, err, types.ErrBusy)
}

// client A acquires with a short TTL, client B is rejected while the record
// is live, then acquires after expiry and receives a strictly higher token
func TestMemoryAcquireAfterExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	token, err := m.TryCreate(ctx, "R", "client-a", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), token)

	_, err = m.TryCreate(ctx, "R", "client-b", 50*time.Millisecond)
	require.ErrorIs(t, err, types.ErrBusy)

	// wait past expiry, no renew
	time.Sleep(80 * time.Millisecond)

	token, err = m.TryCreate(ctx, "R", "client-b", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), token, "token must not be reused after reclamation")
}

// acquire, renew before expiry, release; the next acquisition gets a
// strictly higher token
func TestMemoryAcquireRenewReleaseCycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	token, err := m.TryCreate(ctx, "R", "client-a", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), token)

	expiresIn, err := m.Renew(ctx, "R", "client-a", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, expiresIn)

	require.NoError(t, m.Release(ctx, "R", "client-a"))

	token, err = m.TryCreate(ctx, "R", "client-b", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), token)
}

func TestMemoryRenewExtendsExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 100*time.Millisecond)
	require.NoError(t, err)

	rec, _, err := m.Get(ctx, "orders")
	require.NoError(t, err)
	originalExpiresAt := rec.ExpiresAt

	time.Sleep(20 * time.Millisecond)

	_, err = m.Renew(ctx, "orders", "client-1", 100*time.Millisecond)
	require.NoError(t, err)

	rec, _, err = m.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Greater(t, rec.ExpiresAt, originalExpiresAt, "renewed record should expire later")
}

func TestMemoryRenewNotOwner(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)

	_, err = m.Renew(ctx, "orders", "client-2", 10*time.Second)
	assert.ErrorIs(t, err, types.ErrNotOwner)
}

func TestMemoryRenewExpired(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	// renew after expiry must fail, never silently succeed
	_, err = m.Renew(ctx, "orders", "client-1", 10*time.Second)
	assert.ErrorIs(t, err, types.ErrExpired)

	// renew of a record that never existed reports the same loss
	_, err = m.Renew(ctx, "ghosts", "client-1", 10*time.Second)
	assert.ErrorIs(t, err, types.ErrExpired)
}

func TestMemoryReleaseNotOwner(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)

	err = m.Release(ctx, "orders", "client-2")
	assert.ErrorIs(t, err, types.ErrNotOwner)

	// the record is untouched
	rec, held, err := m.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, held)
	assert.Equal(t, "client-1", rec.Owner)
}

func TestMemoryReleaseAfterExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	err = m.Release(ctx, "orders", "client-1")
	assert.ErrorIs(t, err, types.ErrExpired)
}

func TestMemorySweep(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "short", "client-1", 30*time.Millisecond)
	require.NoError(t, err)
	_, err = m.TryCreate(ctx, "long", "client-2", 10*time.Second)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	reclaimed, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reclaimed, "only the lapsed record should be reclaimed")

	_, held, err := m.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, held)

	_, held, err = m.Get(ctx, "long")
	require.NoError(t, err)
	assert.True(t, held, "live record must survive the sweep")

	// sweep is idempotent
	reclaimed, err = m.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, reclaimed)
}

func TestMemorySweepSkipsRenewed(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 50*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = m.Renew(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	reclaimed, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, reclaimed, "renewed record must not be reclaimed")
}

func TestMemorySweepTargetsPinGrant(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 30*time.Millisecond)
	require.NoError(t, err)
	_, err = m.TryCreate(ctx, "invoices", "client-2", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	targets := m.ExpiredTargets()
	require.Len(t, targets, 2)

	// between observing the targets and applying them, one record is
	// renewed and the other is reclaimed and re-granted
	_, err = m.Renew(ctx, "orders", "client-1", 10*time.Second)
	require.ErrorIs(t, err, types.ErrExpired, "lapsed grant cannot be renewed")
	token, err := m.TryCreate(ctx, "orders", "client-3", 10*time.Second)
	require.NoError(t, err)

	reclaimed := m.SweepTargets(targets)
	assert.Equal(t, 1, reclaimed, "only the untouched record matches its pin")

	rec, held, err := m.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, held, "re-granted record must survive a stale sweep")
	assert.Equal(t, token, rec.FencingToken)

	_, held, err = m.Get(ctx, "invoices")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestMemorySweepTargetsSkipRenewed(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)

	rec, held, err := m.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, held)

	stale := []types.SweepTarget{{
		Resource:     "orders",
		FencingToken: rec.FencingToken,
		Renewals:     rec.Renewals,
	}}

	_, err = m.Renew(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)

	assert.Zero(t, m.SweepTargets(stale), "renewal bumps the pin, stale target must not match")

	_, held, err = m.Get(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, held)
}

func TestMemoryStats(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "a", "client-1", 10*time.Second)
	require.NoError(t, err)
	_, err = m.TryCreate(ctx, "b", "client-2", 10*time.Second)
	require.NoError(t, err)
	require.NoError(t, m.Release(ctx, "a", "client-1"))

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, uint64(2), stats.FencingCounter, "counter never rewinds on release")
}

func TestMemorySnapshotRestore(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.TryCreate(ctx, "orders", "client-1", 10*time.Second)
	require.NoError(t, err)

	records, counter := m.Snapshot()

	// mutating the snapshot must not touch the store
	records["orders"].Owner = "intruder"
	rec, _, err := m.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, "client-1", rec.Owner)

	fresh := NewMemory()
	records, counter = m.Snapshot()
	fresh.Restore(records, counter)

	rec, held, err := fresh.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, held)
	assert.Equal(t, uint64(1), rec.FencingToken)

	// tokens continue from the restored counter
	token, err := fresh.TryCreate(ctx, "billing", "client-2", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), token)
}
