package server

import (
	"context"
	"time"

	pb "github.com/wardenlock/warden/api/v1"
	"github.com/wardenlock/warden/pkg/manager"
	"github.com/wardenlock/warden/pkg/raft"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	pb.UnimplementedWardenServer
	mgr  *manager.Manager
	node *raft.Node // nil for non-replicated backends
}

// wraps the lock manager into a gRPC server
// node is optional: when set, writes are refused on non-leaders so clients
// can redirect to the leader
func NewServer(mgr *manager.Manager, node *raft.Node) *Server {
	return &Server{
		mgr:  mgr,
		node: node,
	}
}

func (s *Server) writable() error {
	if s.node != nil && !s.node.IsLeader() {
		return notLeaderError(s.node.GetLeader())
	}
	return nil
}

func (s *Server) Acquire(ctx context.Context, req *pb.AcquireRequest) (*pb.AcquireResponse, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}

	//validate request
	if req.Resource == "" {
		return nil, status.Error(codes.InvalidArgument, "resource required")
	}

	if req.TtlMs <= 0 {
		return nil, status.Error(codes.InvalidArgument, "ttl_ms must be greater than 0")
	}

	handle, err := s.mgr.Acquire(ctx, req.Resource,
		time.Duration(req.TtlMs)*time.Millisecond,
		time.Duration(req.MaxWaitMs)*time.Millisecond)
	if err != nil {
		return nil, toGRPCError(err)
	}

	return &pb.AcquireResponse{
		Owner:        handle.Owner,
		FencingToken: handle.FencingToken,
		TtlMs:        handle.TTL.Milliseconds(),
	}, nil
}

func (s *Server) Renew(ctx context.Context, req *pb.RenewRequest) (*pb.RenewResponse, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}

	if req.Resource == "" || req.Owner == "" {
		return nil, status.Error(codes.InvalidArgument, "resource and owner are required")
	}

	expiresIn, err := s.mgr.Renew(ctx, req.Resource, req.Owner,
		time.Duration(req.TtlMs)*time.Millisecond)
	if err != nil {
		return nil, toGRPCError(err)
	}

	return &pb.RenewResponse{
		ExpiresInMs: expiresIn.Milliseconds(),
	}, nil
}

func (s *Server) Release(ctx context.Context, req *pb.ReleaseRequest) (*pb.ReleaseResponse, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}

	if req.Resource == "" || req.Owner == "" {
		return nil, status.Error(codes.InvalidArgument, "resource and owner are required")
	}

	if err := s.mgr.Release(ctx, req.Resource, req.Owner); err != nil {
		return nil, toGRPCError(err)
	}

	return &pb.ReleaseResponse{
		Released: true,
	}, nil
}

func (s *Server) Status(ctx context.Context, req *pb.StatusRequest) (*pb.StatusResponse, error) {
	stats, err := s.mgr.Stats(ctx)
	if err != nil {
		return nil, toGRPCError(err)
	}

	resp := &pb.StatusResponse{
		Records:        int32(stats.Records),
		FencingCounter: stats.FencingCounter,
	}

	if s.node != nil {
		resp.NodeId = s.node.GetNodeID().String()
		resp.IsLeader = s.node.IsLeader()
		resp.LeaderAddress = s.node.GetLeader()
		resp.State = s.node.GetState().String()
	}

	return resp, nil
}
