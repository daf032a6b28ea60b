package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sparse-life/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "lifed ", log.LstdFlags|log.Lmsgprefix)
	a, err := app.New(ctx, *cfg, logger)
	if err != nil {
		log.Fatalf("lifed: %v", err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatalf("lifed: %v", err)
	}
}
