package fsm

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/hashicorp/raft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardenlock/warden/pkg/types"
)

// TestRaftFSMApply tests that Apply works with the JSON log encoding
func TestRaftFSMApply(t *testing.T) {
	raftFSM := NewRaftFSM()

	cmd := types.NewCommand(types.OpTryCreate, "orders", "client-1", 10*time.Second)

	// Serialize to bytes (what Raft does)
	data, err := cmd.Encode()
	require.NoError(t, err)

	logEntry := &raft.Log{
		Index: 1,
		Term:  1,
		Type:  raft.LogCommand,
		Data:  data,
	}

	result := raftFSM.Apply(logEntry)

	resp, ok := result.(TryCreateResponse)
	require.True(t, ok, "expected TryCreateResponse")
	assert.Equal(t, uint64(1), resp.FencingToken)

	// Verify state was updated
	rec, held, err := raftFSM.fsm.Store().Get(context.Background(), "orders")
	require.NoError(t, err)
	require.True(t, held)
	assert.Equal(t, "client-1", rec.Owner)
}

// TestRaftFSMApplyError tests that domain errors come back as the apply result
func TestRaftFSMApplyError(t *testing.T) {
	raftFSM := NewRaftFSM()

	data, err := types.NewCommand(types.OpTryCreate, "orders", "client-1", 10*time.Second).Encode()
	require.NoError(t, err)
	_ = raftFSM.Apply(&raft.Log{Index: 1, Term: 1, Type: raft.LogCommand, Data: data})

	data, err = types.NewCommand(types.OpTryCreate, "orders", "client-2", 10*time.Second).Encode()
	require.NoError(t, err)
	result := raftFSM.Apply(&raft.Log{Index: 2, Term: 1, Type: raft.LogCommand, Data: data})

	resultErr, ok := result.(error)
	require.True(t, ok, "expected an error result")
	assert.ErrorIs(t, resultErr, types.ErrBusy)
}

// TestRaftFSMSnapshot tests snapshot creation
func TestRaftFSMSnapshot(t *testing.T) {
	raftFSM := NewRaftFSM()

	_, err := raftFSM.fsm.ApplyCommand(types.NewCommand(types.OpTryCreate, "orders", "client-1", 10*time.Second))
	require.NoError(t, err)
	_, err = raftFSM.fsm.ApplyCommand(types.NewCommand(types.OpTryCreate, "billing", "client-2", 10*time.Second))
	require.NoError(t, err)

	snapshot, err := raftFSM.Snapshot()
	require.NoError(t, err)

	fsmSnap := snapshot.(*fsmSnapshot)
	assert.Equal(t, 2, len(fsmSnap.Records))
	assert.Equal(t, uint64(2), fsmSnap.FencingCounter)
}

// TestRaftFSMRestore tests restoring from snapshot
func TestRaftFSMRestore(t *testing.T) {
	original := NewRaftFSM()

	result, err := original.fsm.ApplyCommand(types.NewCommand(types.OpTryCreate, "orders", "client-1", 10*time.Second))
	require.NoError(t, err)
	token := result.(TryCreateResponse).FencingToken

	snapshot, err := original.Snapshot()
	require.NoError(t, err)

	// Persist snapshot to buffer
	var buf bytes.Buffer
	mockSink := &mockSnapshotSink{buffer: &buf}
	err = snapshot.Persist(mockSink)
	require.NoError(t, err)

	// Create new FSM and restore from snapshot
	restored := NewRaftFSM()
	err = restored.Restore(io.NopCloser(&buf))
	require.NoError(t, err)

	// Verify restored FSM has same state
	rec, held, err := restored.fsm.Store().Get(context.Background(), "orders")
	require.NoError(t, err)
	require.True(t, held)
	assert.Equal(t, "client-1", rec.Owner)
	assert.Equal(t, token, rec.FencingToken)

	// Fencing tokens continue from the restored counter
	next, err := restored.fsm.ApplyCommand(types.NewCommand(types.OpTryCreate, "billing", "client-2", 10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, token+1, next.(TryCreateResponse).FencingToken)
}

// mockSnapshotSink implements raft.SnapshotSink for testing
type mockSnapshotSink struct {
	buffer *bytes.Buffer
}

func (m *mockSnapshotSink) Write(p []byte) (n int, err error) {
	return m.buffer.Write(p)
}

func (m *mockSnapshotSink) Close() error {
	return nil
}

func (m *mockSnapshotSink) ID() string {
	return "mock-snapshot"
}

func (m *mockSnapshotSink) Cancel() error {
	return nil
}
