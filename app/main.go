package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/bgg-plays/app/bgg"
	"github.com/lysyi3m/bgg-plays/app/cfg"
	"github.com/lysyi3m/bgg-plays/app/database"
	"github.com/lysyi3m/bgg-plays/app/output"
	"github.com/lysyi3m/bgg-plays/app/tasks"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if c == nil {
		return
	}

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c); err != nil {
		slog.Error("Run failed", "mode", c.Mode, "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cfg.Cfg) error {
	slog.Debug("Starting bgg-plays", "version", c.Version, "mode", c.Mode, "source", c.Source, "store", c.Store)

	store, err := database.Open(ctx, c)
	if err != nil {
		return err
	}

	var repo *database.Repository
	if store != nil {
		defer store.Close()
		repo = database.NewRepository(store)
	}

	client := bgg.NewClient(c)

	var task tasks.TaskInterface
	switch c.Mode {
	case cfg.ModeSeed:
		task = tasks.NewSeedTask(c, client, repo)
	default:
		task = tasks.NewReportTask(c, client, repo, output.New(c))
	}

	task.Start()
	if err := task.Execute(ctx); err != nil {
		slog.Error("Task failed", "type", task.GetType(), "id", task.GetID(), "duration", task.GetDuration())
		return err
	}

	return nil
}
