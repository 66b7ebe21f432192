package raft

import (
	"context"
	"fmt"
	"time"

	"github.com/wardenlock/warden/pkg/fsm"
	"github.com/wardenlock/warden/pkg/store"
	"github.com/wardenlock/warden/pkg/types"
)

// Store exposes the replicated state machine as a lease store. Writes are
// proposed through the raft log, so the log is the serialization point and
// every replica applies the same mutations in the same order. Reads are
// served from the local state machine.
type Store struct {
	node *Node
}

var _ store.Store = (*Store)(nil)

func NewStore(node *Node) *Store {
	return &Store{node: node}
}

func (s *Store) TryCreate(ctx context.Context, resource, owner string, ttl time.Duration) (uint64, error) {
	result, err := s.node.Apply(types.NewCommand(types.OpTryCreate, resource, owner, ttl))
	if err != nil {
		return 0, err
	}
	return result.(fsm.TryCreateResponse).FencingToken, nil
}

func (s *Store) Renew(ctx context.Context, resource, owner string, ttl time.Duration) (time.Duration, error) {
	result, err := s.node.Apply(types.NewCommand(types.OpRenew, resource, owner, ttl))
	if err != nil {
		return 0, err
	}
	return result.(fsm.RenewResponse).ExpiresIn, nil
}

func (s *Store) Release(ctx context.Context, resource, owner string) error {
	_, err := s.node.Apply(types.NewCommand(types.OpRelease, resource, owner, 0))
	return err
}

func (s *Store) Get(ctx context.Context, resource string) (*types.Record, bool, error) {
	return s.node.FSM().Store().Get(ctx, resource)
}

// only the leader may reclaim; followers report unavailable and the sweeper
// tries again next tick
// the leader reads the lapsed records off its own state machine and proposes
// them by name, so followers delete exactly the proposed set instead of
// re-judging expiry against their own clocks
func (s *Store) Sweep(ctx context.Context) (int, error) {
	if !s.node.IsLeader() {
		return 0, fmt.Errorf("%w: not leader, leader is at %s", types.ErrUnavailable, s.node.GetLeader())
	}

	targets := s.node.FSM().Store().ExpiredTargets()
	if len(targets) == 0 {
		return 0, nil
	}

	result, err := s.node.Apply(types.Command{Op: types.OpSweep, Targets: targets})
	if err != nil {
		return 0, err
	}
	return result.(fsm.SweepResponse).Reclaimed, nil
}

func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	return s.node.FSM().Store().Stats(ctx)
}

func (s *Store) Close() error {
	return s.node.Shutdown()
}
