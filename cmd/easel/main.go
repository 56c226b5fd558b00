// Package main is the entry point for the easel CLI.
package main

import (
	"fmt"
	"os"

	"github.com/easelhq/easel/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "easel",
		Short: "Joy of Painting episode catalog server",
		Long:  `Easel catalogs episodes of The Joy of Painting with the colors on each palette and the subjects depicted, and serves them over an HTTP API.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
