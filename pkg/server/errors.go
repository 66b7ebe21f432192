package server

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wardenlock/warden/pkg/types"
)

// converts domain errors to gRPC status errors
func toGRPCError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, types.ErrInvalidTTL):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, types.ErrTimeout):
		return status.Error(codes.DeadlineExceeded, err.Error())

	//checked before the loss cases: a loss caused by not owning the record
	//reports PermissionDenied, not FailedPrecondition
	case errors.Is(err, types.ErrNotOwner):
		return status.Error(codes.PermissionDenied, err.Error())

	case errors.Is(err, types.ErrBusy), errors.Is(err, types.ErrLost), errors.Is(err, types.ErrExpired):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, types.ErrUnavailable):
		return status.Error(codes.Unavailable, err.Error())

	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// returns a not leader error naming the current leader address so clients
// can redirect their writes
func notLeaderError(leaderAddr string) error {
	return status.Errorf(codes.Unavailable,
		"not leader, leader is at : %s", leaderAddr)
}
