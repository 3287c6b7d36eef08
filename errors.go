package resc

import (
	"errors"

	"github.com/kunalshah912/resc/internal/respath"
)

// Errors re-exported from internal packages.
var (
	// ErrBadResourcePath is returned when an input path has no type
	// directory to classify from. It aborts the whole invocation.
	ErrBadResourcePath = respath.ErrBadPath
)

var (
	// ErrInvalidPath is returned when a type directory is outside the
	// recognized resource type vocabulary. It aborts the whole invocation.
	ErrInvalidPath = errors.New("invalid file path")

	// ErrCompileFailed is returned when at least one input failed to
	// compile. The remaining inputs were still attempted.
	ErrCompileFailed = errors.New("one or more inputs failed to compile")
)
