package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_snl_generator/internal/ports"
)

// Config defines configuration for warming up the system
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	generators  []ports.Generator
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterGenerator adds a pipeline generator to be warmed up
func (wm *Manager) RegisterGenerator(gen ports.Generator) {
	wm.generators = append(wm.generators, gen)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.generators)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	// Create a context with timeout if duration is specified
	var warmupCtx context.Context
	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	} else {
		warmupCtx = ctx
	}

	wm.warmUpNormalizers(warmupCtx)
	wm.warmUpGenerators(warmupCtx)

	// Force garbage collection if configured
	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// warmUpNormalizers runs warmup for all registered normalizers
func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	sampleText := sampleCaseStudy(wm.config.SampleTextSize)

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, normalizer := range wm.normalizers {
					_ = normalizer.Normalize(sampleText)
				}
			}
		}()
	}

	wg.Wait()
}

// warmUpGenerators runs warmup for all registered pipeline generators
func (wm *Manager) warmUpGenerators(ctx context.Context) {
	if len(wm.generators) == 0 {
		return
	}

	wm.logger.Debug("Warming up generators", "count", len(wm.generators))

	sampleText := sampleCaseStudy(wm.config.SampleTextSize)

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Fewer iterations for the full pipeline
			for j := 0; j < wm.config.Iterations/10; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, generator := range wm.generators {
					_ = generator.Generate(ctx, sampleText)
				}
			}
		}()
	}

	wg.Wait()
}

// sampleCaseStudy builds deterministic case-study text of roughly the
// requested size. The sentences exercise every template rule, so warmup
// touches the whole classify/rewrite surface.
func sampleCaseStudy(size int) string {
	sentences := []string{
		"The member clicks the login button.",
		"The system validates the credentials.",
		"If the entered information is wrong then system asks member to reenter the details.",
		"When the book is returned the librarian updates the record.",
		"The user can search the catalog and selects a book.",
		"The books must be available for all members.",
	}

	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(sentences[i%len(sentences)])
	}
	return sb.String()
}
