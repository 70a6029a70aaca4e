package stream

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/pool"
	"github.com/baditaflorin/go_snl_generator/internal/ports"
)

const (
	// DefaultScannerBufferSize defines the initial buffer size for the
	// document scanner
	DefaultScannerBufferSize = 8192 // 8KB

	// MaxScannerBufferSize defines the maximum buffer size for the scanner
	// This helps prevent "token too long" errors on large case studies
	MaxScannerBufferSize = 1024 * 1024 // 1MB
)

var _ ports.DocumentProcessor = (*BatchProcessor)(nil)

// BatchProcessor runs many case-study documents through one generator.
// Results keep the input order regardless of worker count.
type BatchProcessor struct {
	logger     ports.Logger
	generator  ports.Generator
	bufferPool *pool.BufferPool
	workers    int
}

// NewBatchProcessor creates a batch processor. Worker counts below 2 keep
// processing sequential.
func NewBatchProcessor(logger ports.Logger, generator ports.Generator, workers int) *BatchProcessor {
	if workers < 1 {
		workers = 1
	}
	return &BatchProcessor{
		logger:     logger,
		generator:  generator,
		bufferPool: pool.NewBufferPool(DefaultScannerBufferSize),
		workers:    workers,
	}
}

// ProcessAll runs every document through the pipeline. The result at index
// i always corresponds to documents[i].
func (p *BatchProcessor) ProcessAll(ctx context.Context, documents []string) []domain.Result {
	startTime := time.Now()
	results := make([]domain.Result, len(documents))
	if len(documents) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(documents) {
		workers = len(documents)
	}

	if workers < 2 {
		for i, doc := range documents {
			results[i] = p.generator.Generate(ctx, doc)
		}
	} else {
		jobs := make(chan int, len(documents))
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = p.generator.Generate(ctx, documents[i])
				}
			}()
		}
		for i := range documents {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	p.logger.Info("Processed document batch",
		"documents", len(documents),
		"failed", failed,
		"workers", workers,
		"duration", time.Since(startTime),
	)
	return results
}

// ProcessReader reads blank-line-separated documents from the reader and
// processes each one. Lines within a document are joined with a single
// space.
func (p *BatchProcessor) ProcessReader(ctx context.Context, reader io.Reader) ([]domain.Result, error) {
	documents, err := p.readDocuments(reader)
	if err != nil {
		return nil, err
	}
	return p.ProcessAll(ctx, documents), nil
}

// readDocuments splits the input on blank lines. Empty documents are
// skipped.
func (p *BatchProcessor) readDocuments(reader io.Reader) ([]string, error) {
	buffer := p.bufferPool.Get()
	defer p.bufferPool.Put(buffer)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(*buffer, MaxScannerBufferSize)

	var documents []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		documents = append(documents, strings.Join(current, " "))
		current = current[:0]
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading documents")
	}
	flush()

	p.logger.Debug("Read document batch", "documents", len(documents))
	return documents, nil
}
