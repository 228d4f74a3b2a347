// Package health provides liveness endpoints for the daemon.
//
// Docker and Kubernetes probe /healthz over HTTP; orchestrators that prefer
// gRPC can probe the standard grpc.health.v1 service on a separate port when
// one is configured. Both report ready once the daemon accepts traffic.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server exposes /healthz and /readyz over HTTP and, optionally, the
// grpc.health.v1 service.
type Server struct {
	httpPort int
	grpcPort int // 0 disables the gRPC endpoint

	ready      atomic.Bool
	server     *http.Server
	grpcServer *grpc.Server
	grpcHealth *grpchealth.Server
}

// New creates a health server. grpcPort 0 disables the gRPC endpoint.
func New(httpPort, grpcPort int) *Server {
	return &Server{httpPort: httpPort, grpcPort: grpcPort}
}

// SetReady marks the daemon as ready to accept traffic on both endpoints.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
	if s.grpcHealth != nil {
		status := healthpb.HealthCheckResponse_NOT_SERVING
		if ready {
			status = healthpb.HealthCheckResponse_SERVING
		}
		s.grpcHealth.SetServingStatus("", status)
	}
}

// ListenAndServe starts the health endpoints and blocks until the context is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.grpcPort > 0 {
		if err := s.serveGRPC(ctx); err != nil {
			return err
		}
	}
	return s.serveHTTP(ctx)
}

func (s *Server) serveHTTP(ctx context.Context) error {
	mux := http.NewServeMux()

	probe := func(w http.ResponseWriter, r *http.Request) {
		if !s.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}

	mux.HandleFunc("GET /healthz", probe)
	mux.HandleFunc("GET /readyz", probe)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.httpPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("health server listening", "port", s.httpPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
		if s.grpcServer != nil {
			s.grpcServer.GracefulStop()
		}
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}

func (s *Server) serveGRPC(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.grpcPort))
	if err != nil {
		return fmt.Errorf("grpc health listen: %w", err)
	}

	s.grpcServer = grpc.NewServer()
	s.grpcHealth = grpchealth.NewServer()
	healthpb.RegisterHealthServer(s.grpcServer, s.grpcHealth)
	s.SetReady(s.ready.Load())

	slog.Info("grpc health server listening", "port", s.grpcPort)

	go func() {
		if err := s.grpcServer.Serve(lis); err != nil {
			slog.Error("grpc health server failed", "error", err)
		}
	}()
	return nil
}
