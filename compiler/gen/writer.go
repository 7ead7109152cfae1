package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer renders the generated files to disk in parallel and runs each
// one through goimports before writing.
type Writer struct {
	gen *Generator

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// NewWriter returns a writer for the generator's output directory.
func NewWriter(g *Generator) *Writer {
	return &Writer{gen: g}
}

// Metrics returns a snapshot of the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

type fileTask struct {
	name string
	file *jen.File
}

// Generate renders every output file. One file per table, plus
// client.go when the schema declares named queries.
func (w *Writer) Generate(ctx context.Context) error {
	cfg := w.gen.cfg
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var tasks []fileTask
	for _, t := range w.gen.schema.Tables {
		tasks = append(tasks, fileTask{
			name: strings.ToLower(t.Name) + ".go",
			file: w.gen.entityFile(t),
		})
	}
	if len(w.gen.schema.Queries) > 0 {
		tasks = append(tasks, fileTask{name: "client.go", file: w.gen.clientFile()})
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, t := range tasks {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(t)
			}
		})
	}
	return eg.Wait()
}

func (w *Writer) writeFile(t fileTask) error {
	var buf bytes.Buffer
	if err := t.file.Render(&buf); err != nil {
		return &GenError{File: t.name, Message: "render", Cause: err}
	}
	path := filepath.Join(w.gen.cfg.OutDir, t.name)
	src, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return &GenError{File: t.name, Message: "format", Cause: err}
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return &GenError{File: t.name, Cause: err}
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(src))
	w.mu.Unlock()
	return nil
}
