package client

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/wardenlock/warden/api/v1"
	"github.com/wardenlock/warden/pkg/types"
)

// a held lock
// losing the lock is never silent: KeepAlive closes Done and records Err the
// moment a renewal reports the hold gone, and the caller must abort whatever
// it was doing under the lock
type Lock struct {
	client       *Client
	resource     string
	owner        string
	fencingToken uint64
	ttl          time.Duration

	mu       sync.Mutex
	lost     error
	stopCh   chan struct{}
	done     chan struct{}
	lostOnce sync.Once
	stopOnce sync.Once
}

func (l *Lock) Resource() string {
	return l.resource
}

func (l *Lock) Owner() string {
	return l.owner
}

// the fencing token for this grant; attach it to downstream writes
func (l *Lock) Token() uint64 {
	return l.fencingToken
}

// closed once the hold is known to be lost
func (l *Lock) Done() <-chan struct{} {
	return l.done
}

// why the hold was lost, once Done is closed
func (l *Lock) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lost
}

// KeepAlive renews the hold at a third of the TTL until the lock is released,
// the hold is lost, or ctx is cancelled.
func (l *Lock) KeepAlive(ctx context.Context) {
	go l.keepAliveLoop(ctx)
}

func (l *Lock) keepAliveLoop(ctx context.Context) {
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	var failureCount int

	for {
		select {
		case <-ticker.C:
			_, err := l.client.client.Renew(ctx, &pb.RenewRequest{
				Resource: l.resource,
				Owner:    l.owner,
				TtlMs:    l.ttl.Milliseconds(),
			})
			if err == nil {
				if failureCount > 0 {
					l.client.logger.Info("renew recovered", "resource", l.resource, "failures", failureCount)
					failureCount = 0
				}
				continue
			}

			if renewLost(err) {
				l.markLost(err)
				return
			}

			failureCount++
			l.client.logger.Warn("renew failed", "resource", l.resource, "attempt", failureCount, "error", err)
			if failureCount >= 2 {
				l.client.logger.Error("hold may expire soon, renew keeps failing", "resource", l.resource)
			}

		case <-l.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// the server reports a lost hold as a precondition or permission failure
func renewLost(err error) bool {
	switch status.Code(err) {
	case codes.FailedPrecondition, codes.PermissionDenied:
		return true
	}
	return false
}

func (l *Lock) markLost(cause error) {
	l.mu.Lock()
	l.lost = cause
	l.mu.Unlock()

	l.lostOnce.Do(func() {
		close(l.done)
	})
	l.client.logger.Error("hold lost", "resource", l.resource, "cause", cause)
}

// Release stops the keepalive and gives the resource up.
func (l *Lock) Release(ctx context.Context) error {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})

	_, err := l.client.client.Release(ctx, &pb.ReleaseRequest{
		Resource: l.resource,
		Owner:    l.owner,
	})
	if err != nil {
		if renewLost(err) {
			l.markLost(err)
			return types.ErrLost
		}
		return err
	}

	return nil
}
