package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/document"
	"github.com/specialistvlad/schedgrid/internal/watch"
)

// definitionExt is the extension of schedule definition files.
const definitionExt = ".hcl"

// Status describes the outcome of the most recent generation.
type Status struct {
	Generations int       `json:"generations"`
	LastRun     time.Time `json:"last_run"`
	Schedules   []string  `json:"schedules"`
	LastError   string    `json:"last_error,omitempty"`
}

// rendered is one finalized schedule serialized to the configured format.
type rendered struct {
	name string
	doc  []byte
	hash string
}

// Run executes the main application logic. Without watch mode it generates
// once and returns the first error. In watch mode generation errors are
// logged and Run returns when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	if !a.config.Watch {
		return a.Generate(ctx)
	}

	w, err := watch.New(a.config.DefinitionPath, definitionExt, a.config.Debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer a.closeHealthCheckServer()
	}

	if err := a.Generate(ctx); err != nil {
		a.logger.Error("Generation failed.", "error", err)
	}

	a.logger.Info("👀 Watching for changes...", "path", a.config.DefinitionPath)
	err = w.Run(ctx, func(ctx context.Context, changed []string) {
		a.logger.Info("Definition files changed.", "files", changed)
		if err := a.Generate(ctx); err != nil {
			a.logger.Error("Generation failed.", "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		a.logger.Debug("App.Run method finished.")
		return nil
	}
	return err
}

// Generate loads every schedule under the definition path, builds and
// finalizes its graph, and emits the serialized documents.
func (a *App) Generate(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger
	var names []string
	start := time.Now()
	defer func() {
		generationDuration.Observe(time.Since(start).Seconds())
		generationsTotal.WithLabelValues(resultLabel(err)).Inc()
		a.record(names, err)
	}()

	docs, err := a.render(ctx)
	if err != nil {
		return err
	}
	for _, d := range docs {
		names = append(names, d.name)
	}

	if err := a.emit(ctx, docs); err != nil {
		return err
	}
	if a.publisher != nil {
		for _, d := range docs {
			res, err := a.publisher.Publish(ctx, d.name, d.doc, a.config.Format)
			if err != nil {
				return err
			}
			if res.Uploaded {
				documentsTotal.WithLabelValues("published").Inc()
			} else {
				documentsTotal.WithLabelValues("deduplicated").Inc()
			}
		}
	}

	logger.Info("🏁 Generation finished.", "schedules", len(docs))
	return nil
}

func (a *App) render(ctx context.Context) ([]rendered, error) {
	logger := ctxlog.FromContext(ctx)

	scheds, err := a.loader.Load(ctx, a.config.DefinitionPath)
	if err != nil {
		return nil, err
	}
	if len(scheds) == 0 {
		logger.Warn("No schedule definitions found.", "path", a.config.DefinitionPath)
		return nil, nil
	}

	docs := make([]rendered, 0, len(scheds))
	for _, sched := range scheds {
		ctx := ctxlog.With(ctx, "schedule", sched.Name)
		root, err := a.builder.Build(ctx, sched)
		if err != nil {
			return nil, err
		}
		if err := root.Finalize(); err != nil {
			return nil, fmt.Errorf("failed to finalize schedule %s: %w", sched.Name, err)
		}
		doc, err := document.Render(root, a.config.Format)
		if err != nil {
			return nil, fmt.Errorf("failed to render schedule %s: %w", sched.Name, err)
		}
		ctxlog.FromContext(ctx).Debug("Schedule rendered.", "bytes", len(doc))
		docs = append(docs, rendered{name: sched.Name, doc: doc, hash: document.Hash(doc)})
	}
	return docs, nil
}

// emit writes docs to the output writer, a single file, or one file per
// schedule in the output directory. Files whose content would not change
// are left alone.
func (a *App) emit(ctx context.Context, docs []rendered) error {
	logger := ctxlog.FromContext(ctx)
	out := a.config.OutputPath

	if out == "" {
		for _, d := range docs {
			if _, err := a.outW.Write(d.doc); err != nil {
				return fmt.Errorf("failed to write document %s: %w", d.name, err)
			}
		}
		return nil
	}

	if !a.isOutputDir(len(docs)) {
		if len(docs) == 0 {
			return nil
		}
		return a.writeFile(ctx, out, docs[0])
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, d := range docs {
		if err := a.writeFile(ctx, filepath.Join(out, d.name+a.config.Format.Extension()), d); err != nil {
			return err
		}
	}
	logger.Debug("Documents emitted.", "dir", out, "count", len(docs))
	return nil
}

func (a *App) isOutputDir(count int) bool {
	out := a.config.OutputPath
	if strings.HasSuffix(out, string(filepath.Separator)) || strings.HasSuffix(out, "/") {
		return true
	}
	if st, err := os.Stat(out); err == nil && st.IsDir() {
		return true
	}
	return count > 1
}

func (a *App) writeFile(ctx context.Context, path string, d rendered) error {
	logger := ctxlog.FromContext(ctx)

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, d.doc) {
		documentsTotal.WithLabelValues("unchanged").Inc()
		logger.Debug("Document unchanged, skipping.", "schedule", d.name, "file", path)
		return nil
	}

	if err := os.WriteFile(path, d.doc, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", d.name, err)
	}
	documentsTotal.WithLabelValues("written").Inc()
	logger.Info("Document written.", "schedule", d.name, "file", path, "sha256", d.hash)
	return nil
}

func (a *App) record(names []string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status.Generations++
	a.status.LastRun = time.Now()
	a.status.LastError = ""
	if err != nil {
		a.status.LastError = err.Error()
		return
	}
	a.status.Schedules = names
}
