package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// type of store command carried through the raft log
type CommandOp uint8

const (
	OpTryCreate CommandOp = iota + 1
	OpRenew
	OpRelease
	OpSweep
)

// a single mutation of the lease store, encoded as JSON in the raft log
// TTLMillis is carried as an integer so the wire form is stable across nodes
type Command struct {
	Op        CommandOp     `json:"op"`
	Resource  string        `json:"resource,omitempty"`
	Owner     string        `json:"owner,omitempty"`
	TTLMillis int64         `json:"ttl_ms,omitempty"`
	Targets   []SweepTarget `json:"targets,omitempty"` //OpSweep only
}

// names a record proposed for reclamation
// an OpSweep command carries the explicit records the proposer observed as
// lapsed, never a "whatever looks expired here" instruction, so every node
// applying the command deletes exactly the same set regardless of its local
// clock. FencingToken pins the grant (tokens are never reused) and Renewals
// pins its renewal count, so a grant renewed or re-issued between proposal
// and apply no longer matches and survives.
type SweepTarget struct {
	Resource     string `json:"resource"`
	FencingToken uint64 `json:"fencing_token"`
	Renewals     uint64 `json:"renewals,omitempty"`
}

func (c Command) TTL() time.Duration {
	return time.Duration(c.TTLMillis) * time.Millisecond
}

func NewCommand(op CommandOp, resource, owner string, ttl time.Duration) Command {
	return Command{
		Op:        op,
		Resource:  resource,
		Owner:     owner,
		TTLMillis: ttl.Milliseconds(),
	}
}

func (c Command) Encode() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	return data, nil
}

func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("failed to decode command: %w", err)
	}
	return cmd, nil
}
