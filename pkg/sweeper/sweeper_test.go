package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenlock/warden/pkg/store"
)

func TestSweeperReclaimsExpired(t *testing.T) {
	m := store.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := m.TryCreate(ctx, "short", "client-1", 40*time.Millisecond)
	require.NoError(t, err)
	_, err = m.TryCreate(ctx, "long", "client-2", 10*time.Second)
	require.NoError(t, err)

	s := New(m, 20*time.Millisecond, hclog.NewNullLogger())
	go s.Run(ctx)

	assert.Eventually(t, func() bool {
		_, held, err := m.Get(ctx, "short")
		return err == nil && !held
	}, time.Second, 10*time.Millisecond, "lapsed record should be reclaimed")

	_, held, err := m.Get(ctx, "long")
	require.NoError(t, err)
	assert.True(t, held, "live record must survive sweeping")
}

func TestSweeperSkipsRenewed(t *testing.T) {
	m := store.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := m.TryCreate(ctx, "orders", "client-1", 60*time.Millisecond)
	require.NoError(t, err)

	s := New(m, 20*time.Millisecond, hclog.NewNullLogger())
	go s.Run(ctx)

	//keep renewing past several sweep intervals
	for i := 0; i < 5; i++ {
		time.Sleep(30 * time.Millisecond)
		_, err := m.Renew(ctx, "orders", "client-1", 60*time.Millisecond)
		require.NoError(t, err, "a renewed record must never be reclaimed")
	}

	_, held, err := m.Get(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, held)
}

func TestSweeperStopsOnCancel(t *testing.T) {
	m := store.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())

	s := New(m, 10*time.Millisecond, hclog.NewNullLogger())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
