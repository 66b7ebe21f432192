package fsm

import (
	"context"
	"fmt"
	"time"

	"github.com/wardenlock/warden/pkg/store"
	"github.com/wardenlock/warden/pkg/types"
)

// FSM drives the in-memory lease store as a state machine: every mutation
// enters through a command, so the same sequence of commands reproduces the
// same store state on every node
// critical :
// - fencing tokens must be strictly monotonic
// - at most one live record per resource
// - expired records must release the resource
type FSM struct {
	store *store.Memory
}

func New() *FSM {
	return &FSM{
		store: store.NewMemory(),
	}
}

// the store backing this state machine, for reads
func (f *FSM) Store() *store.Memory {
	return f.store
}

// returned for a granted acquisition
type TryCreateResponse struct {
	FencingToken uint64
}

// returned for a successful renewal
type RenewResponse struct {
	ExpiresIn time.Duration
}

// returned for a successful release
type ReleaseResponse struct {
	Released bool
}

// returned for a sweep pass
type SweepResponse struct {
	Reclaimed int
}

// applies a command to the store and returns the result or error
func (f *FSM) ApplyCommand(cmd types.Command) (any, error) {
	ctx := context.Background()

	switch cmd.Op {
	case types.OpTryCreate:
		token, err := f.store.TryCreate(ctx, cmd.Resource, cmd.Owner, cmd.TTL())
		if err != nil {
			return nil, err
		}
		return TryCreateResponse{FencingToken: token}, nil

	case types.OpRenew:
		expiresIn, err := f.store.Renew(ctx, cmd.Resource, cmd.Owner, cmd.TTL())
		if err != nil {
			return nil, err
		}
		return RenewResponse{ExpiresIn: expiresIn}, nil

	case types.OpRelease:
		if err := f.store.Release(ctx, cmd.Resource, cmd.Owner); err != nil {
			return nil, err
		}
		return ReleaseResponse{Released: true}, nil

	case types.OpSweep:
		//the command names the records to reclaim; consulting the local
		//clock here would let replicas delete different sets
		return SweepResponse{Reclaimed: f.store.SweepTargets(cmd.Targets)}, nil

	default:
		return nil, fmt.Errorf("unknown command op: %d", cmd.Op)
	}
}
