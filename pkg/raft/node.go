package raft

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/raft"

	"github.com/wardenlock/warden/pkg/fsm"
	"github.com/wardenlock/warden/pkg/metrics"
	"github.com/wardenlock/warden/pkg/storage"
	"github.com/wardenlock/warden/pkg/types"
)

const applyTimeout = 5 * time.Second

// wraps a raft instance with our state machine and provides a clean api
type Node struct {
	raft    *raft.Raft
	fsm     *fsm.FSM
	raftFSM *fsm.RaftFSM
	durable *storage.Durable
	cfg     *Config
	logger  hclog.Logger
}

type Config struct {
	NodeID    uuid.UUID    //unique ID for this node
	BindAddr  string       //net addr to bind raft communication
	DataDir   string       //data directory for raft storage
	Bootstrap bool         //if this is the first node in the cluster
	Logger    hclog.Logger //optional, defaults to a named stderr logger
}

func NewNode(cfg *Config) (*Node, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Name: "warden", Output: os.Stderr})
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	raftFSM := fsm.NewRaftFSM()
	stateMachine := raftFSM.GetFSM()

	raftCfg := raft.DefaultConfig()
	raftCfg.LocalID = raft.ServerID(cfg.NodeID.String())
	raftCfg.Logger = logger.Named("raft")

	raftCfg.HeartbeatTimeout = 1000 * time.Millisecond
	raftCfg.ElectionTimeout = 1000 * time.Millisecond
	raftCfg.CommitTimeout = 50 * time.Millisecond //time to wait before committing entries
	raftCfg.SnapshotThreshold = 8192              // snapshot after 8K log entries

	durable, err := storage.NewDurable(cfg.DataDir, logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("failed to create stores: %w", err)
	}

	//tcp transport for inter-node communication
	addr, err := net.ResolveTCPAddr("tcp", cfg.BindAddr)
	if err != nil {
		durable.Close()
		return nil, fmt.Errorf("failed to resolve bind addr: %w", err)
	}

	transport, err := raft.NewTCPTransportWithLogger(cfg.BindAddr, addr, 3, 10*time.Second,
		logger.Named("transport"))
	if err != nil {
		durable.Close()
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	r, err := raft.NewRaft(raftCfg, raftFSM, durable.LogStore, durable.StableStore, durable.SnapshotStore, transport)
	if err != nil {
		durable.Close()
		return nil, fmt.Errorf("failed to create raft: %w", err)
	}

	//bootstrap if needed
	if cfg.Bootstrap {
		configuration := raft.Configuration{
			Servers: []raft.Server{
				{
					ID:      raftCfg.LocalID,
					Address: transport.LocalAddr(),
				},
			},
		}

		r.BootstrapCluster(configuration)
	}

	n := &Node{
		raft:    r,
		fsm:     stateMachine,
		raftFSM: raftFSM,
		durable: durable,
		cfg:     cfg,
		logger:  logger,
	}

	go n.observeLeadership()

	return n, nil
}

// keeps the leader gauge in step with elections
func (n *Node) observeLeadership() {
	for isLeader := range n.raft.LeaderCh() {
		if isLeader {
			metrics.RaftIsLeader.Set(1)
			n.logger.Info("became leader")
		} else {
			metrics.RaftIsLeader.Set(0)
			n.logger.Info("lost leadership")
		}
	}
}

// apply a command to the raft cluster and return the FSM result
func (n *Node) Apply(cmd types.Command) (any, error) {
	data, err := cmd.Encode()
	if err != nil {
		return nil, err
	}

	//replicate to cluster via raft
	future := n.raft.Apply(data, applyTimeout)
	if err := future.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}

	//domain errors ride back as the FSM response
	if respErr, ok := future.Response().(error); ok {
		return nil, respErr
	}

	return future.Response(), nil
}

// returns true if this node is the leader
func (n *Node) IsLeader() bool {
	return n.raft.State() == raft.Leader
}

// returns the leader's address
func (n *Node) GetLeader() string {
	leaderAddr, _ := n.raft.LeaderWithID()
	return string(leaderAddr)
}

// blocks until a leader is elected
func (n *Node) WaitForLeader(timeout time.Duration) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	timeoutCh := time.After(timeout)

	for {
		select {
		case <-timeoutCh:
			return fmt.Errorf("no leader elected within timeout")
		case <-ticker.C:
			if n.GetLeader() != "" {
				return nil
			}
		}
	}
}

func (n *Node) GetNodeID() uuid.UUID {
	return n.cfg.NodeID
}

func (n *Node) GetState() raft.RaftState {
	return n.raft.State()
}

// number of servers in the current raft configuration
func (n *Node) GetClusterSize() int {
	future := n.raft.GetConfiguration()
	if err := future.Error(); err != nil {
		return 0
	}
	return len(future.Configuration().Servers)
}

// the local state machine, for reads
func (n *Node) FSM() *fsm.FSM {
	return n.fsm
}

// gracefully shuts down the raft node
func (n *Node) Shutdown() error {
	if err := n.raft.Shutdown().Error(); err != nil {
		return err
	}
	return n.durable.Close()
}
