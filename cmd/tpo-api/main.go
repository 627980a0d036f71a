package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/campusops/tpo-api/internal/server"
	"github.com/campusops/tpo-api/pkg/config"
	"github.com/campusops/tpo-api/pkg/logger"
)

// @title Campus TPO API
// @version 1.0.0
// @description Placement portal API for students, faculty, companies and admins
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	srv, err := server.New(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to build server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
