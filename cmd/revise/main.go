package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/revisehq/revise/internal/config"
	"github.com/revisehq/revise/internal/domain"
	"github.com/revisehq/revise/internal/storage"
	"github.com/revisehq/revise/internal/syncer"
	"github.com/revisehq/revise/internal/web"
)

func main() {
	flags := pflag.NewFlagSet("revise", pflag.ExitOnError)
	configPath := flags.String("config", "revise.yaml", "Path to the yaml config file")
	flags.String("addr", ":8484", "Listen address for the web UI")
	flags.String("db", "revise.db", "Path to the sqlite database file")
	flags.String("repos_dir", "repos", "Directory where git deck sources are cloned")
	addSource := flags.String("add-source", "", "Register a new card source (path or git URL) and exit")
	syncOnly := flags.Bool("sync-only", false, "Sync all sources and exit instead of serving")
	if err := flags.Parse(os.Args[1:]); err != nil {
		slog.Error("Failed to parse flags", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Database opened", "path", cfg.DB)

	clock := domain.SystemClock{}

	if *addSource != "" {
		source, err := syncer.AddSource(db, *addSource, clock.Now())
		if err != nil {
			slog.Error("Failed to add source", "path", *addSource, "error", err)
			os.Exit(1)
		}
		slog.Info("Source added", "id", source.ID, "type", source.Type, "path", source.Path)
		return
	}

	if *syncOnly {
		if err := syncer.Run(db, cfg.ReposDir, clock.Now()); err != nil {
			slog.Error("Sync failed", "error", err)
			os.Exit(1)
		}
		return
	}

	server := web.NewServer(db, clock, cfg.ReposDir)
	slog.Info("Serving", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
