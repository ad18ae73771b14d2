package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/adminpanel/internal/platform/config"
	platformgrpc "github.com/louisbranch/adminpanel/internal/platform/grpc"
	"github.com/louisbranch/adminpanel/internal/platform/timeouts"
	integrationstorage "github.com/louisbranch/adminpanel/internal/services/admin/integration/storage"
	"github.com/louisbranch/adminpanel/internal/services/admin/integration/usersapi"
	"github.com/louisbranch/adminpanel/internal/services/admin/panel"
	"github.com/louisbranch/adminpanel/internal/services/admin/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// UsersHealthService is the gRPC health service name that tracks the
	// outcome of the latest users load.
	UsersHealthService = "adminpanel.users"
	// registrySweepInterval controls how often idle panels are torn down.
	registrySweepInterval = time.Minute
)

type adminServerEnv struct {
	DBPath string `env:"ADMINPANEL_DB_PATH" envDefault:"data/admin.db"`
}

func loadAdminServerEnv() (adminServerEnv, error) {
	var cfg adminServerEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return adminServerEnv{}, fmt.Errorf("parse admin server env: %w", err)
	}
	return cfg, nil
}

// Config defines the inputs for the admin server.
type Config struct {
	HTTPAddr string
	// APIBaseURL is the upstream serving /api/users, /api/export and
	// /api/live-location.
	APIBaseURL     string
	MapsAPIKey     string
	ReplayInterval time.Duration
	RequestTimeout time.Duration
	// HealthAddr enables the gRPC health endpoint when set.
	HealthAddr  string
	StrictForms bool
	SessionTTL  time.Duration
}

// Server hosts the admin panel.
type Server struct {
	httpAddr   string
	healthAddr string
	httpServer *http.Server
	registry   *panel.Registry
	health     *platformgrpc.HealthServer
	adminStore storage.Store
}

// NewServer builds the admin server and its dependencies.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	client, err := usersapi.New(usersapi.Config{
		BaseURL: config.APIBaseURL,
		Timeout: config.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	adminEnv, err := loadAdminServerEnv()
	if err != nil {
		return nil, err
	}
	adminStore, err := integrationstorage.OpenStore(adminEnv.DBPath)
	if err != nil {
		return nil, err
	}

	health := platformgrpc.NewHealthServer(UsersHealthService)
	registry := panel.NewRegistry(panel.RegistryConfig{
		Factory: func(sessionID string) *panel.Panel {
			return panel.New(panel.Options{
				SessionID:      sessionID,
				API:            client,
				Activity:       adminStore,
				ReplayInterval: config.ReplayInterval,
				StrictForms:    config.StrictForms,
				OnLoad: func(err error) {
					health.SetServing(UsersHealthService, err == nil)
				},
			})
		},
		Sessions: adminStore,
		TTL:      config.SessionTTL,
	})

	handler := NewHandler(HandlerConfig{
		Registry:   registry,
		Activity:   adminStore,
		MapsAPIKey: config.MapsAPIKey,
	})
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		healthAddr: strings.TrimSpace(config.HealthAddr),
		httpServer: httpServer,
		registry:   registry,
		health:     health,
		adminStore: adminStore,
	}, nil
}

// Handler exposes the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server, the panel sweeper and the optional
// health endpoint until the context ends or one of them fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.registry.Run(groupCtx, registrySweepInterval)
		return nil
	})
	if s.healthAddr != "" {
		group.Go(func() error {
			log.Printf("admin health listening on %s", s.healthAddr)
			return s.health.ListenAndServe(groupCtx, s.healthAddr)
		})
	}
	group.Go(func() error {
		return s.serveHTTP(groupCtx)
	})
	return group.Wait()
}

func (s *Server) serveHTTP(ctx context.Context) error {
	serveErr := make(chan error, 1)
	log.Printf("admin listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close tears down every panel and releases the admin store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.registry != nil {
		s.registry.Close()
	}
	if s.adminStore != nil {
		if err := s.adminStore.Close(); err != nil {
			log.Printf("close admin store: %v", err)
		}
	}
}
