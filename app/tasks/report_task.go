package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/bgg-plays/app/cfg"
	"github.com/lysyi3m/bgg-plays/app/database"
	"github.com/lysyi3m/bgg-plays/app/output"
	"github.com/lysyi3m/bgg-plays/app/plays"
	"github.com/lysyi3m/bgg-plays/app/state"
)

var ErrNoUsername = errors.New("username is required (use -u)")

// ReportTask finds the user's previous plays of one game and writes them out as forum code.
type ReportTask struct {
	Task
	cfg       *cfg.Cfg
	catalog   Catalog
	collector *plays.Collector
	repo      *database.Repository
	formatter *plays.Formatter
	writer    output.Writer
}

// NewReportTask builds the task. repo may be nil when no cache store is configured.
func NewReportTask(c *cfg.Cfg, catalog Catalog, repo *database.Repository, writer output.Writer) *ReportTask {
	return &ReportTask{
		Task:      NewTask(TaskTypeReport),
		cfg:       c,
		catalog:   catalog,
		collector: plays.NewCollector(catalog, c),
		repo:      repo,
		formatter: plays.NewFormatter(),
		writer:    writer,
	}
}

func (t *ReportTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := state.Load(t.cfg.DataFile)
	if err != nil {
		return err
	}

	if t.cfg.Username != "" {
		data.Username = t.cfg.Username
	}
	if data.Username == "" {
		return ErrNoUsername
	}

	gameID := plays.ParseGameID(t.cfg.Game)

	adjustments, err := plays.LoadAdjustments(t.cfg.AdjustmentsFile)
	if err != nil {
		return err
	}

	newLists, err := t.collector.FindNewLists(ctx, data.LastThreadPostID)
	if err != nil {
		return err
	}
	data.LastThreadPostID = newLists.Watermark
	added := data.AddLists(newLists.ListIDs)

	if err := state.Save(t.cfg.DataFile, data); err != nil {
		return err
	}

	slog.Debug("Known lists updated", "added", added, "total", len(data.ListIDs))

	entries, err := t.collect(ctx, data)
	if err != nil {
		return err
	}

	family, err := t.targetFamily(ctx, gameID)
	if err != nil {
		return err
	}

	candidates := plays.SortByDateDesc(plays.FilterByLists(entries, data.ListIDs))
	matched := plays.Reconcile(candidates, gameID, family)

	if err := t.writer.Write(t.formatter.Run(matched, adjustments)); err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"username", data.Username,
		"game", gameID,
		"entries", len(entries),
		"matched", len(matched),
		"duration", t.GetDuration())

	return nil
}

func (t *ReportTask) collect(ctx context.Context, data *state.Data) ([]plays.Entry, error) {
	if t.cfg.Source == cfg.SourceLists {
		return t.collector.CollectFromLists(ctx, data.Username, data.ListIDs)
	}

	user, err := t.catalog.GetUser(ctx, data.Username)
	if err != nil {
		return nil, err
	}

	return t.collector.CollectFromFeed(ctx, user.ID, true)
}

// targetFamily prefers the cached game record and falls back to a catalog lookup.
func (t *ReportTask) targetFamily(ctx context.Context, gameID string) ([]string, error) {
	if t.repo != nil {
		game, err := t.repo.GetGame(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to read cached game %s: %w", gameID, err)
		}
		if game != nil {
			slog.Debug("Using cached expansion family", "game", gameID, "name", game.Name)
			return game.ExpansionFor, nil
		}
	}

	return t.catalog.ResolveExpansionFamily(ctx, gameID)
}
