// Package main implements catalogctl, the process that loads and inspects the question catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ai-interview-lab/internal/app"
	"ai-interview-lab/internal/core/config"
	"ai-interview-lab/internal/core/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Manage the interview question catalog",
	Long:          "catalogctl replaces the question catalog from a JSON or YAML file and reports on its contents. It shares the data directory with the api and admin servers.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
}

// openApp 命令行只输出 warn 以上日志，避免干扰 stdout
func openApp(ctx context.Context) (*app.App, func(), error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opt := logger.FromConfig(cfg.Log)
	opt.Level = "warn"
	log, cleanup := logger.New(opt)

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("open store %s: %w", cfg.Store.DataDir, err)
	}
	return a, func() {
		if err := a.Close(); err != nil {
			log.Warn("close", zap.Error(err))
		}
		cleanup()
	}, nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
