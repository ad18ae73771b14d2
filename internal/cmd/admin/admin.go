package admin

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	platformcmd "github.com/louisbranch/adminpanel/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/adminpanel/internal/platform/grpc"
	"github.com/louisbranch/adminpanel/internal/platform/timeouts"
	"github.com/louisbranch/adminpanel/internal/services/admin"
)

const (
	defaultHTTPAddr   = ":8082"
	defaultAPIBaseURL = "http://localhost:3000"
	defaultSessionTTL = timeouts.PanelSessionTTL
	probeTimeout      = 5 * time.Second
)

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr       string        `env:"ADMINPANEL_ADDR"             envDefault:":8082"`
	APIBaseURL     string        `env:"ADMINPANEL_API_BASE_URL"     envDefault:"http://localhost:3000"`
	MapsAPIKey     string        `env:"ADMINPANEL_MAPS_API_KEY"`
	ReplayInterval time.Duration `env:"ADMINPANEL_REPLAY_INTERVAL"  envDefault:"1s"`
	RequestTimeout time.Duration `env:"ADMINPANEL_REQUEST_TIMEOUT"  envDefault:"5s"`
	HealthAddr     string        `env:"ADMINPANEL_HEALTH_ADDR"`
	StrictForms    bool          `env:"ADMINPANEL_STRICT_FORMS"     envDefault:"true"`
	SessionTTL     time.Duration `env:"ADMINPANEL_SESSION_TTL"      envDefault:"2h"`
	// Probe checks a running instance's health endpoint and exits.
	Probe bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "users API base URL")
	fs.StringVar(&cfg.MapsAPIKey, "maps-api-key", cfg.MapsAPIKey, "maps API key (empty renders positions as text)")
	fs.DurationVar(&cfg.ReplayInterval, "replay-interval", cfg.ReplayInterval, "delay between replayed location samples")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "timeout for each users API call")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "gRPC health listen address (empty disables)")
	fs.BoolVar(&cfg.StrictForms, "strict-forms", cfg.StrictForms, "reject blank name or email before calling the users API")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "idle time before a panel session is discarded")
	fs.BoolVar(&cfg.Probe, "probe", false, "check the health endpoint of a running instance and exit")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.HTTPAddr = strings.TrimSpace(cfg.HTTPAddr)
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.ReplayInterval <= 0 {
		return Config{}, fmt.Errorf("replay interval must be positive, got %s", cfg.ReplayInterval)
	}
	return cfg, nil
}

// Run starts the admin server, or probes a running one when cfg.Probe is set.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Probe {
		return probe(ctx, cfg)
	}
	server, err := admin.NewServer(admin.Config{
		HTTPAddr:       cfg.HTTPAddr,
		APIBaseURL:     cfg.APIBaseURL,
		MapsAPIKey:     cfg.MapsAPIKey,
		ReplayInterval: cfg.ReplayInterval,
		RequestTimeout: cfg.RequestTimeout,
		HealthAddr:     cfg.HealthAddr,
		StrictForms:    cfg.StrictForms,
		SessionTTL:     cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("init admin server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve admin: %w", err)
	}
	return nil
}

func probe(ctx context.Context, cfg Config) error {
	addr := strings.TrimSpace(cfg.HealthAddr)
	if addr == "" {
		return fmt.Errorf("probe requires a health address")
	}
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := platformgrpc.Probe(probeCtx, addr, admin.UsersHealthService, log.Printf); err != nil {
		return fmt.Errorf("probe %s: %w", addr, err)
	}
	return nil
}
