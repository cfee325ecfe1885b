// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file discovers and parses definition files. Parsed schedules are kept
// in an LRU cache keyed by file path and invalidated by content hash, so a
// watch loop only re-parses files that actually changed.
package model

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/fsutil"
	"github.com/specialistvlad/schedgrid/internal/hclutil"
)

// DefaultCacheSize is the number of parsed files a Loader remembers.
const DefaultCacheSize = 256

// Loader parses schedule definition files.
type Loader struct {
	variables map[string]string
	cache     *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	sum      [sha256.Size]byte
	schedule *Schedule
}

// NewLoader creates a loader. variables override the defaults of the
// `variable` blocks of every file it parses.
func NewLoader(variables map[string]string) *Loader {
	cache, err := lru.New[string, cacheEntry](DefaultCacheSize)
	if err != nil {
		panic(fmt.Sprintf("model: create parse cache: %v", err))
	}
	return &Loader{variables: variables, cache: cache}
}

// hclScheduleFile is the top-level structure of a definition file.
type hclScheduleFile struct {
	Variables []*hclVariable `hcl:"variable,block"`
	Remain    hcl.Body       `hcl:",remain"`
}

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: string(KindSchedule), LabelNames: []string{"name"}}},
}

// Parse decodes a single definition held in memory. filename is only used
// for diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*Schedule, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing schedule definition.", "file", filename)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root hclScheduleFile
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	vars, diags := evalVariables(root.Variables, l.variables)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate variables in %s: %w", filename, diags)
	}
	logger.Debug("Variables evaluated.", "file", filename, "count", len(vars))

	content, diags := root.Remain.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	block, diags := hclutil.RequireBlock(root.Remain, content.Blocks, string(KindSchedule))
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid schedule file %s: %w", filename, diags)
	}

	node, diags := decodeNode(KindSchedule, block.Labels[0], block.Body, block.DefRange, newEvalContext(vars))
	if diags.HasErrors() {
		return nil, fmt.Errorf("error parsing schedule in file %s: %w", filename, diags)
	}

	sched := &Schedule{Node: *node, FSInformation: NewFSInfo(filename)}
	logger.Debug("Schedule parsed.", "file", filename, "schedule", sched.Name, "nodes", sched.Count())
	return sched, nil
}

// LoadFile parses the file at path, reusing the cached result when the
// content is unchanged since the last call.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Schedule, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sum := sha256.Sum256(src)

	if entry, ok := l.cache.Get(path); ok && entry.sum == sum {
		logger.Debug("Schedule file unchanged, using cached parse.", "file", path)
		return entry.schedule, nil
	}

	sched, err := l.Parse(ctx, src, path)
	if err != nil {
		l.cache.Remove(path)
		return nil, err
	}
	l.cache.Add(path, cacheEntry{sum: sum, schedule: sched})
	return sched, nil
}

// Load parses a single file, or every .hcl file below a directory, in
// lexical path order. Schedule names must be unique across files.
func (l *Loader) Load(ctx context.Context, path string) ([]*Schedule, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading schedules from path.", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find schedule files in %s: %w", path, err)
		}
	}
	if len(files) == 0 {
		logger.Warn("No .hcl schedule files found in path.", "path", path)
		return nil, nil
	}

	origin := make(map[string]string, len(files))
	schedules := make([]*Schedule, 0, len(files))
	for _, file := range files {
		sched, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		if prev, dup := origin[sched.Name]; dup {
			return nil, fmt.Errorf("schedule %q is defined in both %s and %s", sched.Name, prev, file)
		}
		origin[sched.Name] = file
		schedules = append(schedules, sched)
	}

	logger.Debug("Schedules loaded.", "count", len(schedules))
	return schedules, nil
}
