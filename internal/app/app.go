package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/sysctl-control/internal/cache"
	"github.com/atomicstack/sysctl-control/internal/clipboard"
	"github.com/atomicstack/sysctl-control/internal/docs"
	"github.com/atomicstack/sysctl-control/internal/event"
	"github.com/atomicstack/sysctl-control/internal/logging"
	"github.com/atomicstack/sysctl-control/internal/logging/events"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
	"github.com/atomicstack/sysctl-control/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Root           string
	DocsPath       string
	DocsGlob       string
	DocsPattern    string
	NoDocs         bool
	CachePath      string
	NoCache        bool
	Width          int
	Height         int
	ShowFooter     bool
	Section        string
	Query          string
	TickRate       time.Duration
	MessageTimeout time.Duration
	Clipboard      bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctrl, err := sysctl.Load(cfg.Root)
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}
	if !cfg.NoDocs {
		if err := loadDocs(context.Background(), cfg, ctrl); err != nil {
			return err
		}
	}

	source := event.NewSource(cfg.TickRate)
	defer source.Stop()

	model := ui.NewModel(ctrl, ui.Options{
		Width:          cfg.Width,
		Height:         cfg.Height,
		ShowFooter:     cfg.ShowFooter,
		Section:        cfg.Section,
		Query:          cfg.Query,
		MessageTimeout: cfg.MessageTimeout,
		CursorBlink:    true,
		Events:         source,
		Clipboard:      clipboard.New(cfg.Clipboard),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// loadDocs resolves the documentation directory, reads it from the cache or
// parses it, and applies it to ctrl. A missing directory is not an error.
func loadDocs(ctx context.Context, cfg Config, ctrl *sysctl.Sysctl) error {
	base := cfg.DocsPath
	if base == "" {
		found, ok := sysctl.FindDocs(sysctl.DocsCandidates)
		if !ok {
			events.App.Docs("none", "", 0)
			return nil
		}
		base = found
	}
	documents, source, err := Documents(ctx, cfg, base)
	if err != nil {
		return err
	}
	events.App.Docs(source, base, len(documents))
	ctrl.ApplyDocs(documents)
	return nil
}

// Documents returns the parsed documentation under base and where it came
// from ("cache" or "parse"). Entries are keyed by base, glob and pattern.
// Cache failures fall back to parsing.
func Documents(ctx context.Context, cfg Config, base string) ([]docs.Document, string, error) {
	glob := cfg.DocsGlob
	if glob == "" {
		glob = sysctl.DefaultDocsGlob
	}
	pattern := cfg.DocsPattern
	if pattern == "" {
		pattern = sysctl.DefaultDocsPattern
	}
	parser, err := docs.NewParser(glob, pattern)
	if err != nil {
		return nil, "", fmt.Errorf("docs parser: %w", err)
	}
	label := parser.Label(base)

	var store *cache.Cache
	if !cfg.NoCache {
		store = openCache(cfg.CachePath)
	}
	if store != nil {
		defer store.Close()
		documents, err := store.Load(ctx, label)
		if err == nil {
			return documents, "cache", nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logging.Error(err)
		}
	}

	documents, err := parser.Parse(ctx, base)
	if err != nil {
		return nil, "", fmt.Errorf("parse docs: %w", err)
	}
	if store != nil {
		if err := store.Store(ctx, label, documents); err != nil {
			logging.Error(err)
		}
	}
	return documents, "parse", nil
}

func openCache(path string) *cache.Cache {
	if path == "" {
		resolved, err := cache.DefaultPath()
		if err != nil {
			logging.Error(err)
			return nil
		}
		path = resolved
	}
	store, err := cache.Open(path)
	if err != nil {
		logging.Error(err)
		return nil
	}
	return store
}
