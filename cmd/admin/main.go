// Package main starts the operator admin panel.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	admincmd "github.com/louisbranch/adminpanel/internal/cmd/admin"
	"github.com/louisbranch/adminpanel/internal/platform/config"
	platformcmd "github.com/louisbranch/adminpanel/internal/platform/cmd"
)

func main() {
	cfg, err := admincmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("admin: parse flags: %v", err)
	}
	log.SetPrefix("[ADMIN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(ctx context.Context) error {
		return admincmd.Run(ctx, cfg)
	}
	if cfg.Probe {
		err = run(ctx)
	} else {
		err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceAdmin, run)
	}
	if err != nil {
		log.Fatalf("admin: %v", err)
	}
}
