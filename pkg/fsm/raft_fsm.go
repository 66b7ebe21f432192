package fsm

import (
	"encoding/json"
	"io"

	"github.com/hashicorp/raft"

	"github.com/wardenlock/warden/pkg/types"
)

// adapter to bridge the raft FSM contract with our state machine
type RaftFSM struct {
	fsm *FSM
}

func NewRaftFSM() *RaftFSM {
	return &RaftFSM{
		fsm: New(),
	}
}

func (rf *RaftFSM) GetFSM() *FSM {
	return rf.fsm
}

func (rf *RaftFSM) Apply(log *raft.Log) any {
	cmd, err := types.DecodeCommand(log.Data)
	if err != nil {
		return err
	}

	result, err := rf.fsm.ApplyCommand(cmd)
	if err != nil {
		return err
	}

	return result
}

// create a snapshot of the current store state
func (rf *RaftFSM) Snapshot() (raft.FSMSnapshot, error) {
	records, fencingCounter := rf.fsm.store.Snapshot()

	return &fsmSnapshot{
		Records:        records,
		FencingCounter: fencingCounter,
	}, nil
}

// restores store state from snapshot
// when a node falls behind and needs to catch up or a new node joins
func (rf *RaftFSM) Restore(snapshot io.ReadCloser) error {
	defer snapshot.Close()

	var snap fsmSnapshot
	if err := json.NewDecoder(snapshot).Decode(&snap); err != nil {
		return err
	}

	if snap.Records == nil {
		snap.Records = make(map[string]*types.Record)
	}
	rf.fsm.store.Restore(snap.Records, snap.FencingCounter)

	return nil
}

// point-in-time snapshot of store state
type fsmSnapshot struct {
	Records        map[string]*types.Record `json:"records"`
	FencingCounter uint64                   `json:"fencing_counter"`
}

// persist snapshot to given sink
func (s *fsmSnapshot) Persist(sink raft.SnapshotSink) error {
	if err := json.NewEncoder(sink).Encode(s); err != nil {
		sink.Cancel() //fail snapshot on error
		return err
	}
	return sink.Close() //mark snapshot as complete
}

// called when snapshot is no longer needed
// we have no resources to clean up here
func (s *fsmSnapshot) Release() {}
