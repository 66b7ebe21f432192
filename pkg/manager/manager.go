package manager

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/wardenlock/warden/pkg/metrics"
	"github.com/wardenlock/warden/pkg/store"
	"github.com/wardenlock/warden/pkg/types"
)

const (
	defaultBackoffBase = 10 * time.Millisecond
	defaultBackoffCap  = 250 * time.Millisecond
)

// Manager is the public acquire/renew/release contract on top of a lease
// store. Acquire is the only blocking call: it retries the store with
// randomized exponential backoff until the resource is granted or maxWait
// elapses. Renew and release surface any loss of ownership as ErrLost, which
// callers must treat as an abort of their critical section.
type Manager struct {
	store  store.Store
	logger hclog.Logger

	backoffBase time.Duration
	backoffCap  time.Duration
}

func New(s store.Store, logger hclog.Logger) *Manager {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Name: "manager", Output: os.Stderr})
	}
	return &Manager{
		store:       s,
		logger:      logger,
		backoffBase: defaultBackoffBase,
		backoffCap:  defaultBackoffCap,
	}
}

// a granted hold on a resource
// the fencing token must be attached to every write performed under the hold
// so downstream storage can reject writes from a stale (lower) token
type Handle struct {
	Resource     string
	Owner        string
	FencingToken uint64
	TTL          time.Duration
}

// Acquire claims resource for a fresh owner. It retries ErrBusy and transient
// store failures with randomized backoff and gives up with ErrTimeout once
// maxWait has elapsed without a grant.
func (m *Manager) Acquire(ctx context.Context, resource string, ttl, maxWait time.Duration) (*Handle, error) {
	start := time.Now()
	owner := uuid.NewString()
	deadline := start.Add(maxWait)
	backoff := m.backoffBase

	for {
		token, err := m.store.TryCreate(ctx, resource, owner, ttl)
		switch {
		case err == nil:
			metrics.AcquireTotal.WithLabelValues(resource, "granted").Inc()
			metrics.AcquireDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
			return &Handle{
				Resource:     resource,
				Owner:        owner,
				FencingToken: token,
				TTL:          ttl,
			}, nil

		case errors.Is(err, types.ErrBusy), errors.Is(err, types.ErrUnavailable):
			//contended or transient, retry below

		default:
			metrics.AcquireTotal.WithLabelValues(resource, "error").Inc()
			return nil, err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			metrics.AcquireTotal.WithLabelValues(resource, "timeout").Inc()
			return nil, fmt.Errorf("%w: %q after %s", types.ErrTimeout, resource, maxWait)
		}

		//randomized so competing acquirers do not retry in lockstep
		wait := m.backoffBase + time.Duration(rand.Int63n(int64(backoff)))
		if wait > remaining {
			wait = remaining
		}

		select {
		case <-ctx.Done():
			metrics.AcquireTotal.WithLabelValues(resource, "error").Inc()
			return nil, ctx.Err()
		case <-time.After(wait):
		}

		backoff *= 2
		if backoff > m.backoffCap {
			backoff = m.backoffCap
		}
	}
}

// Renew extends the hold by ttl. ErrLost means ownership was reclaimed by
// expiry or taken by another acquirer; the caller must abort its critical
// section.
func (m *Manager) Renew(ctx context.Context, resource, owner string, ttl time.Duration) (time.Duration, error) {
	expiresIn, err := m.store.Renew(ctx, resource, owner, ttl)
	if err != nil {
		if errors.Is(err, types.ErrNotOwner) || errors.Is(err, types.ErrExpired) {
			metrics.RenewTotal.WithLabelValues("lost").Inc()
			m.logger.Warn("hold lost on renew", "resource", resource, "owner", owner, "cause", err)
			return 0, fmt.Errorf("%w: %w", types.ErrLost, err)
		}
		return 0, err
	}

	metrics.RenewTotal.WithLabelValues("renewed").Inc()
	return expiresIn, nil
}

// Release gives the resource up. ErrLost means the hold was already gone.
func (m *Manager) Release(ctx context.Context, resource, owner string) error {
	if err := m.store.Release(ctx, resource, owner); err != nil {
		if errors.Is(err, types.ErrNotOwner) || errors.Is(err, types.ErrExpired) {
			metrics.ReleaseTotal.WithLabelValues("lost").Inc()
			m.logger.Warn("hold lost before release", "resource", resource, "owner", owner, "cause", err)
			return fmt.Errorf("%w: %w", types.ErrLost, err)
		}
		return err
	}

	metrics.ReleaseTotal.WithLabelValues("released").Inc()
	return nil
}

// Get returns the live record for resource, if any.
func (m *Manager) Get(ctx context.Context, resource string) (*types.Record, bool, error) {
	return m.store.Get(ctx, resource)
}

func (m *Manager) Stats(ctx context.Context) (store.Stats, error) {
	return m.store.Stats(ctx)
}
