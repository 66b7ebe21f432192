package store

import (
	"context"
	"sync"
	"time"

	"github.com/wardenlock/warden/pkg/clock"
	"github.com/wardenlock/warden/pkg/types"
)

// manages core lock record state in process memory
// critical :
// - fencing tokens must be strictly monotonic and never reused
// - at most one live record per resource
// - expired records must become acquirable again
// the mutex is the serialization point, so every operation is atomic with
// respect to every other
type Memory struct {
	mu sync.Mutex

	records map[string]*types.Record // resource -> record

	fencingCounter uint64 // monotonic fencing token counter

	clock *clock.Clock
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]*types.Record),
		clock:   clock.New(),
	}
}

func (m *Memory) TryCreate(_ context.Context, resource, owner string, ttl time.Duration) (uint64, error) {
	if ttl <= 0 {
		return 0, types.ErrInvalidTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := m.clock.Elapsed()
	if rec, held := m.records[resource]; held && !rec.IsExpired(elapsed) {
		return 0, types.ErrBusy
	}

	//absent or lapsed: the resource is free, claim it with the next token
	m.fencingCounter++
	token := m.fencingCounter

	m.records[resource] = &types.Record{
		Resource:     resource,
		Owner:        owner,
		FencingToken: token,
		ExpiresAt:    m.clock.ExpiresAt(ttl),
		TTL:          ttl,
	}

	return token, nil
}

func (m *Memory) Renew(_ context.Context, resource, owner string, ttl time.Duration) (time.Duration, error) {
	if ttl <= 0 {
		return 0, types.ErrInvalidTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, held := m.records[resource]
	if !held {
		return 0, types.ErrExpired
	}

	if rec.Owner != owner {
		return 0, types.ErrNotOwner
	}

	//already lapsed: reclaim now rather than resurrecting the grant
	if rec.IsExpired(m.clock.Elapsed()) {
		delete(m.records, resource)
		return 0, types.ErrExpired
	}

	rec.ExpiresAt = m.clock.ExpiresAt(ttl)
	rec.TTL = ttl
	rec.Renewals++

	return ttl, nil
}

func (m *Memory) Release(_ context.Context, resource, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, held := m.records[resource]
	if !held {
		return types.ErrNotOwner
	}

	if rec.Owner != owner {
		return types.ErrNotOwner
	}

	//the grant lapsed before the owner let go; surface the loss
	if rec.IsExpired(m.clock.Elapsed()) {
		delete(m.records, resource)
		return types.ErrExpired
	}

	delete(m.records, resource)
	return nil
}

func (m *Memory) Get(_ context.Context, resource string) (*types.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, held := m.records[resource]
	if !held || rec.IsExpired(m.clock.Elapsed()) {
		return nil, false, nil
	}

	recCopy := *rec
	return &recCopy, true, nil
}

func (m *Memory) Sweep(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sweepTargetsLocked(m.expiredTargetsLocked()), nil
}

// the records whose grant has lapsed per the local clock, each pinned by
// token and renewal count so a later delete hits only this exact grant
func (m *Memory) ExpiredTargets() []types.SweepTarget {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.expiredTargetsLocked()
}

// deletes the named records if they still carry the pinned grant
// a record that was renewed or re-granted since the targets were observed
// no longer matches and is left alone
func (m *Memory) SweepTargets(targets []types.SweepTarget) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sweepTargetsLocked(targets)
}

func (m *Memory) expiredTargetsLocked() []types.SweepTarget {
	elapsed := m.clock.Elapsed()

	var targets []types.SweepTarget
	for resource, rec := range m.records {
		if rec.IsExpired(elapsed) {
			targets = append(targets, types.SweepTarget{
				Resource:     resource,
				FencingToken: rec.FencingToken,
				Renewals:     rec.Renewals,
			})
		}
	}

	return targets
}

func (m *Memory) sweepTargetsLocked(targets []types.SweepTarget) int {
	reclaimed := 0
	for _, target := range targets {
		rec, held := m.records[target.Resource]
		if !held || rec.FencingToken != target.FencingToken || rec.Renewals != target.Renewals {
			continue
		}
		delete(m.records, target.Resource)
		reclaimed++
	}

	return reclaimed
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Records:        len(m.records),
		FencingCounter: m.fencingCounter,
	}, nil
}

func (m *Memory) Close() error { return nil }

// deep copy of the store state, for snapshots
func (m *Memory) Snapshot() (map[string]*types.Record, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make(map[string]*types.Record, len(m.records))
	for resource, rec := range m.records {
		recCopy := *rec
		records[resource] = &recCopy
	}

	return records, m.fencingCounter
}

// replaces the store state, for snapshot restore
func (m *Memory) Restore(records map[string]*types.Record, fencingCounter uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = records
	m.fencingCounter = fencingCounter
}
