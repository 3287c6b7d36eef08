// Command resc compiles resource source files into a binary intermediate
// archive. It accepts either an explicit list of files or a resource
// directory to scan, and writes per-input outputs to a directory or a
// single container.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kunalshah912/resc"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		output         string
		resDir         string
		pseudolocalize bool
		legacy         bool
		verbose        bool
		workers        int
	)
	flag.StringVar(&output, "o", "", "output path (required): a directory, or an archive with -dir")
	flag.StringVar(&resDir, "dir", "", "resource directory to scan instead of explicit files")
	flag.BoolVar(&pseudolocalize, "pseudo-localize", false, "generate pseudo-locale resources (en-XA and ar-XB)")
	flag.BoolVar(&legacy, "legacy", false, "treat positional-argument errors as warnings")
	flag.BoolVar(&verbose, "v", false, "enable verbose logging")
	flag.IntVar(&workers, "jobs", 1, "number of inputs compiled concurrently")
	flag.Parse()

	logger := newLogger(verbose)
	defer logger.Sync() //nolint:errcheck // stderr sync failures are unactionable

	if output == "" {
		fmt.Fprintln(os.Stderr, "resc: -o is required")
		flag.Usage()
		return 1
	}
	if resDir != "" && flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "resc: files given but -dir specified")
		flag.Usage()
		return 1
	}
	if resDir == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "resc: no input files")
		flag.Usage()
		return 1
	}

	opts := []resc.Option{
		resc.WithPseudolocalize(pseudolocalize),
		resc.WithLegacyMode(legacy),
		resc.WithVerbose(verbose),
		resc.WithWorkers(workers),
		resc.WithLogger(logger),
	}

	ctx := context.Background()
	var err error
	if resDir != "" {
		// Directory scans go to a single container.
		var w *resc.ZipWriter
		w, err = resc.NewZipWriter(output)
		if err == nil {
			err = closeAfter(w, resc.CompileDir(ctx, resDir, w, opts...))
		}
	} else {
		var w *resc.DirWriter
		w, err = resc.NewDirWriter(output)
		if err == nil {
			err = closeAfter(w, resc.Compile(ctx, flag.Args(), w, opts...))
		}
	}
	if err != nil {
		logger.Error("compilation failed", zap.Error(err))
		return 1
	}
	return 0
}

// closeAfter closes the archive, preferring the compile error when both
// fail.
func closeAfter(w resc.ArchiveWriter, err error) error {
	if cerr := w.Close(); err == nil {
		return cerr
	}
	return err
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
