// Package shaker stages a tree of ordinal-keyed content units into a
// relational cache and renders them back out as cross-linked Markdown
// documents, one directory per top-level section.
package shaker

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-shaker/catalog"
	"github.com/goliatone/go-shaker/internal/logging"
	"github.com/goliatone/go-shaker/internal/sink"
	"github.com/goliatone/go-shaker/internal/source"
	"github.com/goliatone/go-shaker/internal/store"
)

// Run executes a complete pipeline: ingest the source tree into the cache,
// then render every section tree into the output directory. The cache is
// populated to completion before any render starts and is never written
// again, so concurrent section walks (Workers > 1) only ever read.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid run configuration")
	}

	provider, err := logging.NewProvider(cfg.Logging)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid logging configuration")
	}
	logger := provider.GetLogger(logging.RootModule)

	st, err := store.Open(store.ParseStrategy(cfg.Cache))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "open cache")
	}
	defer st.Close()

	if err := st.Init(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "initialize cache schema")
	}

	if err := ingest(ctx, cfg, st, provider); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "ingest source tree")
	}

	count, err := st.Count(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "count staged records")
	}
	logger.Info("source tree staged", "records", count, "cache", cfg.Cache)

	if err := render(ctx, cfg, st, provider); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "render output tree")
	}

	logger.Info("output tree written", "output", cfg.Output)
	return nil
}

// ingest is the write phase: every unit the loader resolves is inserted
// exactly once. A failed insert aborts the run with the store unchanged for
// that record.
func ingest(ctx context.Context, cfg Config, st *store.Store, provider *logging.Provider) error {
	loader := source.NewLoader(os.DirFS(cfg.Input), source.LoaderConfig{
		Languages: cfg.Languages,
		Exclude:   cfg.Exclude,
		Logger:    provider.GetLogger(logging.SourceModule),
	})

	records, err := loader.LoadAll(ctx)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := st.Insert(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// render is the read-only phase: one directory per section, each section tree
// written depth-first, then the run manifest.
func render(ctx context.Context, cfg Config, st *store.Store, provider *logging.Provider) error {
	writer := sink.NewOSWriter()
	renderer := sink.NewRenderer(sink.RendererConfig{
		Store:       st,
		Writer:      writer,
		Logger:      provider.GetLogger(logging.SinkModule),
		HTMLPreview: cfg.HTMLPreview,
	})

	sections, err := st.Sections(ctx)
	if err != nil {
		return err
	}

	if err := writer.EnsureDir(ctx, cfg.Output); err != nil {
		return err
	}

	dirs := make(map[string]string, len(sections))
	for _, section := range sections {
		dir := filepath.Join(cfg.Output, section.Slug)
		if err := writer.EnsureDir(ctx, dir); err != nil {
			return err
		}
		dirs[section.Ordinal] = dir
	}

	if err := writeSections(ctx, cfg.Workers, renderer, sections, dirs); err != nil {
		return err
	}

	return renderer.WriteManifest(ctx, cfg.Output)
}

func writeSections(ctx context.Context, workers int, renderer *sink.Renderer, sections []*catalog.Record, dirs map[string]string) error {
	if workers <= 1 {
		for _, section := range sections {
			if err := renderer.WriteTree(ctx, section, dirs[section.Ordinal]); err != nil {
				return err
			}
		}
		return nil
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, section := range sections {
		wg.Add(1)
		sem <- struct{}{}
		go func(section *catalog.Record) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := renderer.WriteTree(ctx, section, dirs[section.Ordinal]); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(section)
	}

	wg.Wait()
	return firstErr
}
