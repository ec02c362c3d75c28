package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	mthttp "mocktable/internal/http"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := initConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	initLogger(&cfg)

	factory, err := initFactory(&cfg)
	if err != nil {
		slog.Error("failed to build fixture tables", "error", err)
		os.Exit(1)
	}

	server := mthttp.NewServer(factory, cfg.Table.DataDir, strconv.Itoa(cfg.Server.Port))
	if err := server.Start(); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()

	if err := server.Stop(); err != nil {
		slog.Warn("failed to stop server", "error", err)
	}
	slog.Info("mocktable stopped", "tables", factory.Size())
}
