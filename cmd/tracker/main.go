package main

import (
	"context"
	"log"
	"os"

	"task-tracker/internal/auth"
	"task-tracker/internal/cli"
	"task-tracker/internal/config"
	"task-tracker/internal/events"
	"task-tracker/internal/registry"
	"task-tracker/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	hub := events.NewHub()
	reg := registry.New(registry.Options{Strict: cfg.Strict, Hub: hub})

	// Optional storage collaborator: restore saved state and save after every change
	ctx := context.Background()
	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath, cfg.DBLogLevel)
		if err != nil {
			log.Fatal("Failed to open storage: ", err)
		}
		defer store.Close()

		snap, err := store.Load(ctx)
		if err != nil {
			log.Fatal("Failed to load saved state: ", err)
		}
		if err := reg.Restore(snap); err != nil {
			log.Fatal("Failed to restore saved state (TRACKER_STRICT=false loads it unvalidated): ", err)
		}
		stop := store.Autosave(ctx, reg, hub)
		defer stop()
	}

	if cfg.SeedDemo && len(reg.ListProjects()) == 0 {
		if err := cli.SeedDemo(reg); err != nil {
			log.Fatal("Failed to seed demo data: ", err)
		}
	}

	tokens, err := auth.NewTokens(auth.TokenConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.SessionTTL,
	})
	if err != nil {
		log.Fatal("Failed to configure sessions: ", err)
	}

	if !reg.Strict() {
		log.Println("Permissive mode: task fields are not validated")
	}

	app := cli.New(reg, auth.NewService(tokens), os.Stdin, os.Stdout, cli.Options{ExportDir: cfg.ExportDir})
	if err := app.Run(); err != nil {
		log.Printf("Stopped: %v", err)
	}
}
