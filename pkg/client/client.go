package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/wardenlock/warden/api/v1"
)

type Client struct {
	addr   string
	conn   *grpc.ClientConn
	client pb.WardenClient
	logger hclog.Logger
}

func New(addr string, logger hclog.Logger) (*Client, error) {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Name: "warden-client", Output: os.Stderr})
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return &Client{
		addr:   addr,
		conn:   conn,
		client: pb.NewWardenClient(conn),
		logger: logger,
	}, nil
}

// Acquire claims resource for at most ttl, waiting up to maxWait for the
// grant. The returned lock carries the fencing token; attach it to every
// write performed under the lock.
func (c *Client) Acquire(ctx context.Context, resource string, ttl, maxWait time.Duration) (*Lock, error) {
	resp, err := c.client.Acquire(ctx, &pb.AcquireRequest{
		Resource:  resource,
		TtlMs:     ttl.Milliseconds(),
		MaxWaitMs: maxWait.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return &Lock{
		client:       c,
		resource:     resource,
		owner:        resp.Owner,
		fencingToken: resp.FencingToken,
		ttl:          time.Duration(resp.TtlMs) * time.Millisecond,
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}, nil
}

func (c *Client) Status(ctx context.Context) (*pb.StatusResponse, error) {
	return c.client.Status(ctx, &pb.StatusRequest{})
}

func (c *Client) Close() error {
	return c.conn.Close()
}
