package raft

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenlock/warden/pkg/fsm"
	"github.com/wardenlock/warden/pkg/types"
)

func newTestNode(t *testing.T, bindAddr string) *Node {
	t.Helper()

	node, err := NewNode(&Config{
		NodeID:    uuid.New(),
		BindAddr:  bindAddr,
		DataDir:   t.TempDir(),
		Bootstrap: true,
		Logger:    hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = node.Shutdown() })

	require.NoError(t, node.WaitForLeader(5*time.Second))
	return node
}

func TestNodeBootstrap(t *testing.T) {
	node := newTestNode(t, "127.0.0.1:17001")

	assert.True(t, node.IsLeader(), "bootstrapped single node should elect itself")
	assert.NotEmpty(t, node.GetLeader())
	assert.Equal(t, 1, node.GetClusterSize())
}

func TestNodeApplyTryCreate(t *testing.T) {
	node := newTestNode(t, "127.0.0.1:17002")

	result, err := node.Apply(types.NewCommand(types.OpTryCreate, "orders", "client-1", 10*time.Second))
	require.NoError(t, err)

	resp := result.(fsm.TryCreateResponse)
	assert.Equal(t, uint64(1), resp.FencingToken)

	//a second owner is rejected with the domain error
	_, err = node.Apply(types.NewCommand(types.OpTryCreate, "orders", "client-2", 10*time.Second))
	assert.ErrorIs(t, err, types.ErrBusy)
}

func TestConcurrentAcquisition(t *testing.T) {
	node := newTestNode(t, "127.0.0.1:17003")

	//3 clients race for the same resource through the replicated log
	var wg sync.WaitGroup
	results := make([]struct {
		success bool
		token   uint64
		err     error
	}, 3)

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			result, err := node.Apply(types.NewCommand(
				types.OpTryCreate, "contended", fmt.Sprintf("client-%d", idx), 10*time.Second))
			if err != nil {
				results[idx].err = err
				return
			}
			results[idx].success = true
			results[idx].token = result.(fsm.TryCreateResponse).FencingToken
		}(i)
	}

	wg.Wait()

	//verify only one succeeded
	successCount := 0
	var winnerToken uint64
	for _, r := range results {
		if r.success {
			successCount++
			winnerToken = r.token
		}
	}

	assert.Equal(t, 1, successCount, "only one client should acquire the resource")
	assert.Greater(t, winnerToken, uint64(0), "winner should have a fencing token")

	//verify the other two got ErrBusy
	failedCount := 0
	for _, r := range results {
		if !r.success && r.err == types.ErrBusy {
			failedCount++
		}
	}
	assert.Equal(t, 2, failedCount, "two clients should get ErrBusy")
}

func TestStoreAcquireRenewRelease(t *testing.T) {
	node := newTestNode(t, "127.0.0.1:17004")
	s := NewStore(node)
	ctx := context.Background()

	token, err := s.TryCreate(ctx, "orders", "client-1", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), token)

	expiresIn, err := s.Renew(ctx, "orders", "client-1", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, expiresIn)

	_, err = s.Renew(ctx, "orders", "client-2", 5*time.Second)
	assert.ErrorIs(t, err, types.ErrNotOwner)

	require.NoError(t, s.Release(ctx, "orders", "client-1"))

	token, err = s.TryCreate(ctx, "orders", "client-2", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), token, "token must increase across grants")
}

func TestStoreRenewAfterExpiry(t *testing.T) {
	node := newTestNode(t, "127.0.0.1:17005")
	s := NewStore(node)
	ctx := context.Background()

	_, err := s.TryCreate(ctx, "orders", "client-1", 200*time.Millisecond)
	require.NoError(t, err)

	//wait for the record to lapse
	time.Sleep(400 * time.Millisecond)

	//renew after expiry must fail, never silently succeed
	_, err = s.Renew(ctx, "orders", "client-1", 5*time.Second)
	assert.ErrorIs(t, err, types.ErrExpired)
}

func TestStoreSweep(t *testing.T) {
	node := newTestNode(t, "127.0.0.1:17006")
	s := NewStore(node)
	ctx := context.Background()

	_, err := s.TryCreate(ctx, "short", "client-1", 200*time.Millisecond)
	require.NoError(t, err)
	_, err = s.TryCreate(ctx, "long", "client-2", 10*time.Second)
	require.NoError(t, err)

	time.Sleep(400 * time.Millisecond)

	reclaimed, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reclaimed, "only the lapsed record is reclaimed")

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Records)
}
