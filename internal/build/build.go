// Package build runs the generation pipeline: read and merge the schema
// sources, render every configured target, then write the results.
package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/estree/estreegen/pkg/parser"
	"github.com/estree/estreegen/pkg/spec"
	"golang.org/x/sync/errgroup"
)

// SourceExt is the extension of schema source files.
const SourceExt = ".estree"

// Config holds the inputs of a build.
type Config struct {
	// Sources are schema files or directories, merged in order. A directory
	// contributes its *.estree files in name order.
	Sources []string

	// Outputs maps an emitter name to the file it writes.
	Outputs map[string]string

	MaxVersion int
}

// Output is one rendered target.
type Output struct {
	Target  string
	Path    string
	Content string
}

// Result summarizes a completed build.
type Result struct {
	Definitions int
	Outputs     []Output
	Duration    time.Duration
}

// ExpandSources resolves directories in sources to the schema files they
// contain. Hidden files are skipped.
func ExpandSources(sources []string) ([]string, error) {
	var files []string
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, errors.Wrapf(err, "source %s", src)
		}
		if !info.IsDir() {
			files = append(files, src)
			continue
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return nil, errors.Wrapf(err, "source %s", src)
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != SourceExt {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			files = append(files, filepath.Join(src, name))
		}
	}
	return files, nil
}

// ParseFile reads and parses a single schema file.
func ParseFile(path string) ([]spec.Definition, error) {
	src, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	defs, err := parser.Parse(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return defs, nil
}

// Load reads every source in order and merges each one into the model built
// from the sources before it.
func Load(ctx context.Context, sources []string) ([]spec.Definition, error) {
	files, err := ExpandSources(sources)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no schema sources")
	}

	var defs []spec.Definition
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parsed, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		defs = spec.Merge(defs, parsed)
	}
	return defs, nil
}

// Generate renders every output target. Targets are rendered in name order;
// the first failure aborts and nothing is returned.
func Generate(defs []spec.Definition, outputs map[string]string, maxVersion int) ([]Output, error) {
	targets := make([]string, 0, len(outputs))
	for target := range outputs {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	results := make([]Output, 0, len(targets))
	for _, target := range targets {
		e, err := emit.Lookup(target)
		if err != nil {
			return nil, err
		}
		content, err := e.Emit(defs, maxVersion)
		if err != nil {
			return nil, errors.Wrapf(err, "emitting %s", target)
		}
		results = append(results, Output{Target: target, Path: outputs[target], Content: content})
	}
	return results, nil
}

// Write writes outputs concurrently, creating parent directories.
func Write(ctx context.Context, outputs []Output) error {
	g, _ := errgroup.WithContext(ctx)
	for _, out := range outputs {
		g.Go(func() error {
			if dir := filepath.Dir(out.Path); dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return errors.Wrapf(err, "creating %s", dir)
				}
			}
			if err := os.WriteFile(out.Path, []byte(out.Content), 0644); err != nil { //nolint:gosec // generated artifacts are world-readable
				return errors.Wrapf(err, "writing %s", out.Path)
			}
			return nil
		})
	}
	return g.Wait()
}

// Run loads the sources, renders every target and writes the results. No
// file is written unless every target rendered.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	start := time.Now()

	defs, err := Load(ctx, cfg.Sources)
	if err != nil {
		return nil, err
	}
	logger.Debug("schema loaded", "sources", len(cfg.Sources), "definitions", len(defs))

	outputs, err := Generate(defs, cfg.Outputs, cfg.MaxVersion)
	if err != nil {
		return nil, err
	}
	if err := Write(ctx, outputs); err != nil {
		return nil, err
	}
	for _, out := range outputs {
		logger.Info("wrote output", "target", out.Target, "path", out.Path, "bytes", len(out.Content))
	}

	return &Result{
		Definitions: len(defs),
		Outputs:     outputs,
		Duration:    time.Since(start),
	}, nil
}
