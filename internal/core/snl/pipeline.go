// Package snl implements the SNL generation pipeline.
//
// A Generator is a pure function of its input text plus the rule tables it
// was built with: no I/O, no state carried across calls. Per-sentence
// classification and rewriting have no inter-sentence dependency, so the
// pipeline can fan out over candidates; results are collected by index to
// keep ordinal order, because downstream dedup is first-occurrence-wins
// and output must be deterministic for identical input.
package snl

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/baditaflorin/go_snl_generator/internal/core/assemble"
	"github.com/baditaflorin/go_snl_generator/internal/core/classify"
	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rewrite"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
	"github.com/baditaflorin/go_snl_generator/internal/ports"
)

// Config holds pipeline-level settings.
type Config struct {
	// Workers is the number of goroutines rewriting candidates. Values
	// below 2 keep the pipeline sequential.
	Workers int
}

// DefaultConfig returns a sequential pipeline configuration.
func DefaultConfig() Config {
	return Config{Workers: 1}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

// Generator runs the full pipeline: normalize, identify actors, segment,
// classify, rewrite, assemble.
type Generator struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
	identifier ports.ActorIdentifier
	segmenter  ports.Segmenter
	classifier *classify.Classifier
	rewriter   *rewrite.Rewriter
	assembler  *assemble.Assembler
}

// NewGenerator creates a pipeline generator from validated rule tables and
// the injected stage adapters.
func NewGenerator(
	rs rules.RuleSet,
	config Config,
	logger ports.Logger,
	normalizer ports.Normalizer,
	identifier ports.ActorIdentifier,
	segmenter ports.Segmenter,
) (*Generator, error) {
	if err := rs.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid rule set")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pipeline config")
	}

	return &Generator{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
		identifier: identifier,
		segmenter:  segmenter,
		classifier: classify.NewClassifier(rs.Classify),
		rewriter:   rewrite.NewRewriter(rs.Rewrite, rs.Actors),
		assembler:  assemble.NewAssembler(rs.Assemble),
	}, nil
}

// Generate converts one case-study text into an SNL result. It never
// panics: unexpected internal failures surface as a failed Result rather
// than an error, and a failed result carries no partial requirement list.
func (g *Generator) Generate(ctx context.Context, text string) (result domain.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			g.logger.Error("SNL generation failed", "panic", rec)
			result = domain.Result{
				Error:   fmt.Sprintf("snl generation failed: %v", rec),
				Details: map[string]interface{}{"panic": fmt.Sprint(rec)},
			}
		}
	}()

	g.logger.Debug("Starting SNL generation", "input_length", len(text))

	normalized := g.normalizer.Normalize(text)
	actors := g.identifier.Identify(text)

	select {
	case <-ctx.Done():
		g.logger.Error("Generation cancelled", "error", ctx.Err())
		return domain.Result{
			Error:   "generation cancelled",
			Details: map[string]interface{}{"error": ctx.Err().Error()},
		}
	default:
	}

	candidates := g.segmenter.Segment(normalized)
	g.logger.Debug("Segmented input",
		"candidates", len(candidates),
		"actors", actors,
	)

	generated := g.rewriteAll(ctx, candidates, actors)

	result = g.assembler.Assemble(candidates, generated, actors)
	result.PreprocessedText = normalized
	result.Details = map[string]interface{}{
		"normalized_length": len(normalized),
		"workers":           g.workers(),
	}

	g.logger.Debug("Generated SNL",
		"input_sentences", result.Stats.InputSentences,
		"raw_generated", result.Stats.RawGenerated,
		"unique_generated", result.Stats.UniqueGenerated,
		"actor_count", result.Stats.ActorCount,
	)
	return result
}

// rewriteAll classifies and rewrites every candidate, sequentially or via
// a worker fan-out. The output slice is index-addressed so ordinal order
// survives the fan-out.
func (g *Generator) rewriteAll(ctx context.Context, candidates []domain.Candidate, actors []string) []domain.Requirement {
	if len(candidates) == 0 {
		return nil
	}

	out := make([]domain.Requirement, len(candidates))
	workers := g.workers()
	if workers < 2 || len(candidates) < 2 {
		for i, c := range candidates {
			out[i] = g.rewriteOne(c, actors)
		}
		return out
	}

	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int, len(candidates))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				out[i] = g.rewriteOne(candidates[i], actors)
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

func (g *Generator) rewriteOne(c domain.Candidate, actors []string) domain.Requirement {
	kind := g.classifier.Classify(c.Text, actors)
	return g.rewriter.Rewrite(c, kind, actors)
}

func (g *Generator) workers() int {
	if g.config.Workers < 1 {
		return 1
	}
	return g.config.Workers
}
