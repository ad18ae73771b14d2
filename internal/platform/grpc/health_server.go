package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer exposes grpc_health_v1 for a process whose readiness depends
// on HTTP upstreams rather than gRPC backends.
type HealthServer struct {
	server *gogrpc.Server
	health *health.Server

	mu       sync.Mutex
	statuses map[string]bool
}

// NewHealthServer builds a health endpoint. The overall ("") status starts
// SERVING; each named service starts NOT_SERVING until reported otherwise.
func NewHealthServer(services ...string) *HealthServer {
	server := gogrpc.NewServer(gogrpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)

	h := &HealthServer{
		server:   server,
		health:   healthServer,
		statuses: make(map[string]bool, len(services)),
	}
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, service := range services {
		h.SetServing(service, false)
	}
	return h
}

// SetServing records the readiness of a named service.
func (h *HealthServer) SetServing(service string, serving bool) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses[service] = serving
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(service, status)
}

// Serving reports the last recorded readiness of a named service.
func (h *HealthServer) Serving(service string) bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.statuses[service]
}

// Serve answers health checks on listener until ctx ends.
func (h *HealthServer) Serve(ctx context.Context, listener net.Listener) error {
	if h == nil {
		return errors.New("health server is nil")
	}
	if listener == nil {
		return errors.New("listener is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- h.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		h.health.Shutdown()
		h.server.GracefulStop()
		<-serveErr
		return nil
	case err := <-serveErr:
		if err == nil || errors.Is(err, gogrpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve grpc health: %w", err)
	}
}

// ListenAndServe listens on addr and answers health checks until ctx ends.
func (h *HealthServer) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen grpc health %s: %w", addr, err)
	}
	return h.Serve(ctx, listener)
}
