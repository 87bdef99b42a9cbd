package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	coregrpc "github.com/msto63/wishbrick/pkg/core/grpc"
	"github.com/msto63/wishbrick/pkg/core/health"
	"github.com/msto63/wishbrick/pkg/core/logging"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ShutdownTimeout bounds the graceful stop after the serve context ends.
const ShutdownTimeout = 5 * time.Second

// Config holds configuration for a worker server
type Config struct {
	Host    string
	Port    int
	Version string
}

// Server serves one Worker over gRPC
type Server struct {
	worker   *Worker
	grpc     *coregrpc.Server
	health   *grpchealth.Server
	registry *health.Registry
	logger   *logging.Logger
	config   Config
}

// NewServer wraps w in a gRPC server with the health service registered.
func NewServer(w *Worker, cfg Config) (*Server, error) {
	if w == nil {
		return nil, wisherror.New("worker is nil").
			WithCode(wisherror.CodeServiceInitialization).
			WithOperation("worker.NewServer")
	}
	if len(w.Commands()) == 0 {
		return nil, wisherror.Newf("worker %s has no handlers", w.Name()).
			WithCode(wisherror.CodeServiceInitialization).
			WithOperation("worker.NewServer")
	}

	grpcCfg := coregrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcServer := coregrpc.NewServer(grpcCfg)

	RegisterService(grpcServer.GRPCServer(), w)

	healthServer := grpchealth.NewServer()
	healthpb.RegisterHealthServer(grpcServer.GRPCServer(), healthServer)

	registry := health.NewRegistry(w.Name(), cfg.Version)
	registry.RegisterFunc("handlers", func(ctx context.Context) health.CheckResult {
		cmds := w.Commands()
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Message: fmt.Sprintf("%d commands", len(cmds)),
			Details: map[string]interface{}{"commands": cmds},
		}
	})

	return &Server{
		worker:   w,
		grpc:     grpcServer,
		health:   healthServer,
		registry: registry,
		logger:   logging.New(w.Name() + "-server"),
		config:   cfg,
	}, nil
}

// Worker returns the served worker.
func (s *Server) Worker() *Worker {
	return s.worker
}

// Health runs the local health checks.
func (s *Server) Health(ctx context.Context) *health.Report {
	return s.registry.Check(ctx)
}

// Serve answers requests on lis until ctx is cancelled, then stops
// gracefully. It returns nil on a clean shutdown.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	if report := s.registry.Check(ctx); report.Status != health.StatusHealthy {
		return wisherror.Newf("worker %s failed its health checks", s.worker.Name()).
			WithCode(wisherror.CodeServiceInitialization).
			WithOperation("worker.Serve")
	}

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpc.Serve(lis)
	}()

	s.logger.Info("Worker listening", "address", lis.Addr().String(), "commands", len(s.worker.Commands()))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return wisherror.Wrap(err, "serve failed").
				WithCode(wisherror.CodeServiceUnavailable).
				WithOperation("worker.Serve")
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down worker")
	s.health.Shutdown()

	stopCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.grpc.StopWithTimeout(stopCtx)

	<-errCh
	return nil
}

// Run binds the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := s.grpc.Listen()
	if err != nil {
		return wisherror.Wrap(err, "failed to bind worker address").
			WithCode(wisherror.CodeServiceInitialization).
			WithOperation("worker.Run").
			WithDetail("address", s.grpc.Address())
	}
	return s.Serve(ctx, lis)
}

// Address returns the listen address.
func (s *Server) Address() string {
	return s.grpc.Address()
}
