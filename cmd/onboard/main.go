// File: cmd/onboard/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"seller-onboarding/internal/capture"
	"seller-onboarding/internal/client"
	"seller-onboarding/internal/config"
	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/wizard"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "registration API base URL")
	catalog := flag.String("products", "", "optional YAML file with products to preload")
	logLevel := flag.String("log-level", "warn", "log level (trace|debug|info|warn|error)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewWithWriter(config.LogConfig{Level: *logLevel, Format: "console"}, false, os.Stderr)

	s := &session{
		in:       os.Stdin,
		out:      os.Stdout,
		ctl:      wizard.NewController(nil),
		capture:  capture.NewFileProvider(0),
		submit:   client.NewSubmitter(*serverURL, nil, logger),
		log:      logger,
		catalog:  *catalog,
	}
	if err := s.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "onboard: %v\n", err)
		os.Exit(1)
	}
}
