package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
)

// DocumentProcessor processes a batch of case-study documents through a
// generator, preserving input order in the returned results.
type DocumentProcessor interface {
	// ProcessAll runs every document through the pipeline.
	ProcessAll(ctx context.Context, documents []string) []domain.Result

	// ProcessReader reads blank-line-separated documents from the reader
	// and processes each one.
	ProcessReader(ctx context.Context, reader io.Reader) ([]domain.Result, error)
}
