package resc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kunalshah912/resc/internal/container"
	"github.com/kunalshah912/resc/internal/imgres"
	"github.com/kunalshah912/resc/internal/respath"
	"github.com/kunalshah912/resc/internal/restype"
	"github.com/kunalshah912/resc/internal/table"
	"github.com/kunalshah912/resc/internal/xmlres"
)

// Compile compiles the given resource files into w, one archive entry per
// input.
//
// Classification errors, unrecognized resource types and archive open
// failures abort the whole run. Per-input failures (unreadable sources,
// codec errors, write errors) are logged, that input is skipped, and the
// batch continues; Compile then returns ErrCompileFailed.
func Compile(ctx context.Context, paths []string, w ArchiveWriter, opts ...Option) error {
	cfg := newCompileConfig(opts)

	descs := make([]respath.Descriptor, 0, len(paths))
	for _, p := range paths {
		desc, err := respath.Classify(p)
		if err != nil {
			return fmt.Errorf("%w (%s)", err, p)
		}
		descs = append(descs, desc)
	}
	return compileAll(ctx, cfg, descs, w)
}

// CompileDir scans root for resource files and compiles them all into w.
// Scan errors abort the run before any compilation.
func CompileDir(ctx context.Context, root string, w ArchiveWriter, opts ...Option) error {
	cfg := newCompileConfig(opts)

	descs, err := ScanDir(root)
	if err != nil {
		return err
	}
	return compileAll(ctx, cfg, descs, w)
}

// pipelineFunc compiles one classified input into a single archive entry.
type pipelineFunc func(ctx context.Context, d *respath.Descriptor, name string, w ArchiveWriter) error

type compiler struct {
	cfg compileConfig

	// mu guards the package ID allocator; only the table pipeline touches
	// it, once per values file.
	mu    sync.Mutex
	alloc *table.IDAllocator
}

func compileAll(ctx context.Context, cfg compileConfig, descs []respath.Descriptor, w ArchiveWriter) error {
	c := &compiler{cfg: cfg, alloc: table.NewIDAllocator()}
	if cfg.workers > 1 {
		return c.compileParallel(ctx, descs, w)
	}

	failed := 0
	for i := range descs {
		if err := ctx.Err(); err != nil {
			return err
		}
		d := &descs[i]
		fn, name, err := c.dispatch(d)
		if err != nil {
			return err
		}
		if cfg.verbose {
			cfg.logger.Info("processing", zap.String("source", d.Source))
		}
		if err := fn(ctx, d, name, w); err != nil {
			cfg.logger.Error("compile failed",
				zap.String("source", d.Source),
				zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrCompileFailed, failed, len(descs))
	}
	return nil
}

// compileParallel shards per-input compilation across workers. Each input
// produces its entry into a memory buffer; buffers are committed to the
// archive behind a single lock, since the container forbids concurrent
// writers. All inputs are dispatched up front: a fatal dispatch error must
// abort before any worker can touch the archive.
func (c *compiler) compileParallel(ctx context.Context, descs []respath.Descriptor, w ArchiveWriter) error {
	type job struct {
		desc *respath.Descriptor
		fn   pipelineFunc
		name string
	}
	jobs := make([]job, 0, len(descs))
	for i := range descs {
		d := &descs[i]
		fn, name, err := c.dispatch(d)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{desc: d, fn: fn, name: name})
	}

	var sinkMu sync.Mutex
	var failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.workers)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mem := &memEntry{}
			err := j.fn(ctx, j.desc, j.name, mem)
			if err == nil {
				sinkMu.Lock()
				err = mem.commit(w)
				sinkMu.Unlock()
			}
			if err != nil {
				c.cfg.logger.Error("compile failed",
					zap.String("source", j.desc.Source),
					zap.Error(err))
				failed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrCompileFailed, n, len(descs))
	}
	return nil
}

// dispatch selects the pipeline and derives the deterministic entry name.
// Values directories force the binary-table extension before naming.
func (c *compiler) dispatch(d *respath.Descriptor) (pipelineFunc, string, error) {
	if d.TypeDir == "values" {
		d.Extension = "tbl"
		return c.compileTable, respath.OutputName(*d), nil
	}

	t, ok := restype.Parse(d.TypeDir)
	if !ok {
		return nil, "", fmt.Errorf("%w %q", ErrInvalidPath, d.Source)
	}
	name := respath.OutputName(*d)
	switch {
	case t == restype.Raw:
		return c.compileOpaque, name, nil
	case d.Extension == "xml":
		return c.compileXML, name, nil
	case d.Extension == "png":
		return c.imagePipeline(false), name, nil
	case d.Extension == "9.png":
		return c.imagePipeline(true), name, nil
	default:
		return c.compileOpaque, name, nil
	}
}

// compileTable parses a values file and writes the whole serialized table
// as one unframed entry.
func (c *compiler) compileTable(ctx context.Context, d *respath.Descriptor, name string, w ArchiveWriter) error {
	f, err := os.Open(d.Source)
	if err != nil {
		return err
	}
	defer f.Close()

	tbl := &table.Table{}
	err = table.Parse(f, tbl, table.ParseOptions{
		Config:       d.Config,
		Source:       d.Source,
		Translatable: !strings.Contains(d.Name, "donottranslate"),
		Legacy:       c.cfg.legacy,
		Logger:       c.cfg.logger,
	})
	if err != nil {
		return err
	}

	if c.cfg.pseudolocalize {
		table.Pseudolocalize(tbl)
	}

	// Ensure the compilation package exists even for files that declared
	// nothing, then assign IDs to packages that lack one.
	tbl.CreatePackage("")
	c.mu.Lock()
	table.AssignIDs(tbl, c.alloc)
	c.mu.Unlock()

	blob := table.Flatten(tbl)
	return writeEntry(w, name, func(ew io.Writer) error {
		_, err := ew.Write(blob)
		return err
	})
}

// compileXML inflates, extracts inline sub-documents, and flattens the main
// document plus each extracted one into a multi-record entry. The record
// count is known only after extraction and is written before flattening.
func (c *compiler) compileXML(ctx context.Context, d *respath.Descriptor, name string, w ArchiveWriter) error {
	if c.cfg.verbose {
		c.cfg.logger.Info("compiling XML", zap.String("source", d.Source))
	}

	f, err := os.Open(d.Source)
	if err != nil {
		return err
	}
	doc, err := xmlres.Inflate(f)
	f.Close()
	if err != nil {
		return err
	}

	doc.Type = d.TypeDir
	doc.Name = d.Name
	doc.ConfigStr = d.ConfigStr
	doc.Config = d.Config
	doc.Source = d.Source

	xmlres.CollectIDs(doc)

	extracted, err := xmlres.ExtractInline(doc)
	if err != nil {
		return err
	}

	return writeEntry(w, name, func(ew io.Writer) error {
		cw := container.NewWriter(ew)
		if err := cw.WriteCount(uint32(1 + len(extracted))); err != nil {
			return err
		}
		for _, sub := range append([]*xmlres.Document{doc}, extracted...) {
			payload, err := xmlres.Flatten(sub)
			if err != nil {
				return err
			}
			rec := container.Record{
				Type:        sub.Type,
				Name:        sub.Name,
				Package:     sub.Package,
				Config:      sub.ConfigStr,
				Source:      sub.Source,
				ExportedIDs: sub.DefinedIDs,
			}
			if err := cw.WriteRecord(rec, payload); err != nil {
				return err
			}
		}
		return nil
	})
}

// imagePipeline returns the image pipeline with the nine-patch flag bound.
func (c *compiler) imagePipeline(ninePatch bool) pipelineFunc {
	return func(ctx context.Context, d *respath.Descriptor, name string, w ArchiveWriter) error {
		if c.cfg.verbose {
			c.cfg.logger.Info("compiling PNG", zap.String("source", d.Source))
		}

		src, err := os.ReadFile(d.Source)
		if err != nil {
			return err
		}
		res, err := imgres.Compile(src, ninePatch)
		if err != nil {
			return err
		}
		if c.cfg.verbose && !res.Reencoded {
			c.cfg.logger.Info("original PNG is smaller than re-encoded PNG, using original",
				zap.String("source", d.Source))
		}
		return writeRecordEntry(w, name, recordFor(d), res.Payload)
	}
}

// compileOpaque passes source bytes through untouched, memory-mapped when
// the platform supports it.
func (c *compiler) compileOpaque(ctx context.Context, d *respath.Descriptor, name string, w ArchiveWriter) error {
	if c.cfg.verbose {
		c.cfg.logger.Info("compiling file", zap.String("source", d.Source))
	}

	data, release, err := mapFile(d.Source)
	if err != nil {
		return err
	}
	defer release()

	return writeRecordEntry(w, name, recordFor(d), data)
}

func recordFor(d *respath.Descriptor) container.Record {
	return container.Record{
		Type:   d.TypeDir,
		Name:   d.Name,
		Config: d.ConfigStr,
		Source: d.Source,
	}
}

// writeEntry runs one entry lifecycle: the entry is finalized only when
// emit succeeded in full.
func writeEntry(w ArchiveWriter, name string, emit func(io.Writer) error) error {
	if err := w.StartEntry(name); err != nil {
		return fmt.Errorf("start entry %s: %w", name, err)
	}
	if err := emit(w); err != nil {
		return err
	}
	if err := w.FinishEntry(); err != nil {
		return fmt.Errorf("finish entry %s: %w", name, err)
	}
	return nil
}

// writeRecordEntry writes a single-record entry.
func writeRecordEntry(w ArchiveWriter, name string, rec container.Record, payload []byte) error {
	return writeEntry(w, name, func(ew io.Writer) error {
		cw := container.NewWriter(ew)
		if err := cw.WriteCount(1); err != nil {
			return err
		}
		return cw.WriteRecord(rec, payload)
	})
}

// memEntry buffers one entry for the parallel path.
type memEntry struct {
	name     string
	buf      []byte
	finished bool
}

func (m *memEntry) StartEntry(name string) error {
	m.name = name
	m.buf = m.buf[:0]
	m.finished = false
	return nil
}

func (m *memEntry) Write(p []byte) (int, error) {
	m.buf = append(m.buf, p...)
	return len(p), nil
}

func (m *memEntry) FinishEntry() error {
	m.finished = true
	return nil
}

func (m *memEntry) Close() error { return nil }

// commit replays the finished entry into the real archive.
func (m *memEntry) commit(w ArchiveWriter) error {
	if !m.finished {
		return errNoEntry
	}
	return writeEntry(w, m.name, func(ew io.Writer) error {
		_, err := ew.Write(m.buf)
		return err
	})
}
