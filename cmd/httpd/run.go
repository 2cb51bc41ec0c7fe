package main

import (
	"fmt"

	"github.com/BenChaimberg/evhttpd/config"
	"github.com/BenChaimberg/evhttpd/eventloop"
	"github.com/BenChaimberg/evhttpd/pool"
	"github.com/BenChaimberg/evhttpd/reactor"
	"github.com/BenChaimberg/evhttpd/serial"
	"github.com/spf13/cobra"
)

func runHTTPD(cmd *cobra.Command, args []string) error {
	configPath := defaultConfigPath
	mode := defaultMode
	if len(args) > 0 {
		configPath = args[0]
	}
	if len(args) > 1 {
		mode = args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch mode {
	case "single":
		return serial.Serve(cfg)
	case "pool":
		return pool.Serve(cfg)
	case "select":
		return runReactor(cfg)
	default:
		return fmt.Errorf("unknown mode %q (want single, pool, or select)", mode)
	}
}

func runReactor(cfg *config.ServerConfig) error {
	loop, err := eventloop.New()
	if err != nil {
		return fmt.Errorf("construct event loop: %w", err)
	}
	if err := reactor.Bootstrap(loop, cfg); err != nil {
		return fmt.Errorf("bootstrap reactor: %w", err)
	}
	return loop.Run()
}
