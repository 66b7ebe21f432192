package storage

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/raft"
	raftboltdb "github.com/hashicorp/raft-boltdb/v2"
)

// number of snapshots retained on disk before old ones are pruned
const snapshotRetain = 3

// Durable wraps the raft storage trio backed by a single BoltDB file
// logstore : raft log entries
// stablestore : raft metadata that must survive restarts (term, vote)
// snapshotstore : file-based snapshots of store state
type Durable struct {
	LogStore      raft.LogStore
	StableStore   raft.StableStore
	SnapshotStore raft.SnapshotStore

	db *raftboltdb.BoltStore
}

func NewDurable(dataDir string, logger hclog.Logger) (*Durable, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	//one BoltDB file serves as both log and stable storage
	db, err := raftboltdb.New(raftboltdb.Options{
		Path: filepath.Join(dataDir, "raft.db"),
	})
	if err != nil {
		return nil, err
	}

	snapshots, err := raft.NewFileSnapshotStoreWithLogger(
		filepath.Join(dataDir, "snapshots"), snapshotRetain, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Durable{
		LogStore:      db,
		StableStore:   db,
		SnapshotStore: snapshots,
		db:            db,
	}, nil
}

func (d *Durable) Close() error {
	return d.db.Close()
}
