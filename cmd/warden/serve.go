package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	pb "github.com/wardenlock/warden/api/v1"
	"github.com/wardenlock/warden/pkg/manager"
	"github.com/wardenlock/warden/pkg/raft"
	"github.com/wardenlock/warden/pkg/server"
	"github.com/wardenlock/warden/pkg/store"
	"github.com/wardenlock/warden/pkg/sweeper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a warden node",
	RunE:  runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("backend", "memory", "Lease store backend: memory, raft or redis")
	flags.String("grpc-addr", ":9000", "gRPC server address")
	flags.String("metrics-addr", ":8080", "Metrics/health HTTP address")
	flags.String("node-id", "", "Unique node ID (generates a UUID if empty)")
	flags.String("raft-addr", "127.0.0.1:7000", "Raft bind address")
	flags.String("data-dir", "./data", "Data directory for raft storage")
	flags.Bool("bootstrap", false, "Bootstrap a new raft cluster")
	flags.String("redis-addr", "127.0.0.1:6379", "Redis address")
	flags.Duration("sweep-interval", time.Second, "Expiry sweeper interval")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn or error")

	viper.SetEnvPrefix("WARDEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "warden",
		Level:  hclog.LevelFromString(viper.GetString("log-level")),
		Output: os.Stderr,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st, node, err := buildStore(logger)
	if err != nil {
		return err
	}
	defer st.Close()

	mgr := manager.New(st, logger.Named("manager"))

	sw := sweeper.New(st, viper.GetDuration("sweep-interval"), logger.Named("sweeper"))
	go sw.Run(ctx)

	grpcAddr := viper.GetString("grpc-addr")
	listener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	grpcServer := grpc.NewServer()
	pb.RegisterWardenServer(grpcServer, server.NewServer(mgr, node))

	go func() {
		logger.Info("gRPC server listening", "addr", grpcAddr)
		if err := grpcServer.Serve(listener); err != nil {
			logger.Error("gRPC server failed", "error", err)
		}
	}()

	httpServer := newMetricsServer(viper.GetString("metrics-addr"))
	go func() {
		logger.Info("metrics server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	logger.Info("warden is ready", "backend", viper.GetString("backend"))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down gracefully")
	cancel()
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}

// builds the configured lease store; the raft node comes back too so the
// gRPC server can refuse writes on followers
func buildStore(logger hclog.Logger) (store.Store, *raft.Node, error) {
	switch backend := viper.GetString("backend"); backend {
	case "memory":
		return store.NewMemory(), nil, nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr: viper.GetString("redis-addr"),
		})
		return store.NewRedis(client), nil, nil

	case "raft":
		nid, err := nodeID(logger)
		if err != nil {
			return nil, nil, err
		}

		node, err := raft.NewNode(&raft.Config{
			NodeID:    nid,
			BindAddr:  viper.GetString("raft-addr"),
			DataDir:   viper.GetString("data-dir"),
			Bootstrap: viper.GetBool("bootstrap"),
			Logger:    logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create raft node: %w", err)
		}
		return raft.NewStore(node), node, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func nodeID(logger hclog.Logger) (uuid.UUID, error) {
	raw := viper.GetString("node-id")
	if raw == "" {
		nid := uuid.New()
		logger.Info("generated node id", "id", nid)
		return nid, nil
	}

	nid, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid node id: %w", err)
	}
	return nid, nil
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
