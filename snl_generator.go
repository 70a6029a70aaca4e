// snl_generator.go
// Package snlgenerator converts natural-language case-study text into
// Structured Natural Language (SNL) requirements following the RUPP
// template methodology. Generation is deterministic: identical input text
// and rule tables always produce identical output.
//
// The zero-configuration path is a single call:
//
//	result := snlgenerator.GenerateWithDefaults(ctx, text)
//
// For repeated use, build a Generator once and reuse it; it is safe for
// concurrent use.
//
// This version uses the functional options pattern to allow configuration
// of the rule tables, normalization strategy, worker count, and logging.
package snlgenerator

import (
	"context"
	"io"
	"os"

	"github.com/baditaflorin/l"
	"github.com/cockroachdb/errors"

	"github.com/baditaflorin/go_snl_generator/internal/adapters/actors"
	"github.com/baditaflorin/go_snl_generator/internal/adapters/logger"
	"github.com/baditaflorin/go_snl_generator/internal/adapters/normalizer"
	"github.com/baditaflorin/go_snl_generator/internal/adapters/stream"
	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
	"github.com/baditaflorin/go_snl_generator/internal/core/segment"
	"github.com/baditaflorin/go_snl_generator/internal/core/snl"
	"github.com/baditaflorin/go_snl_generator/internal/warmup"
)

// Result is the outcome of one generation run.
type Result = domain.Result

// Requirement is a single generated SNL statement.
type Requirement = domain.Requirement

// Stats summarises one generation run.
type Stats = domain.Stats

// TemplateKind is the closed set of RUPP template categories.
type TemplateKind = domain.TemplateKind

// Re-exported template kinds.
const (
	KindConditional      = domain.KindConditional
	KindWhen             = domain.KindWhen
	KindSystemCapability = domain.KindSystemCapability
	KindUserAction       = domain.KindUserAction
	KindModal            = domain.KindModal
	KindFeature          = domain.KindFeature
	KindState            = domain.KindState
	KindValidation       = domain.KindValidation
	KindDefault          = domain.KindDefault
)

// Config holds configuration options for the generator.
type Config struct {
	Rules          rules.RuleSet
	Workers        int
	FastNormalizer bool
	WarmUp         bool
	WarmUpConfig   warmup.Config
	// Logger for tracing pipeline steps.
	Logger l.Logger
}

// Option defines a functional option for configuring the generator.
type Option func(*Config) error

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) error {
		cfg.Logger = logger
		return nil
	}
}

// WithRules replaces the default rule tables.
func WithRules(rs rules.RuleSet) Option {
	return func(cfg *Config) error {
		cfg.Rules = rs
		return nil
	}
}

// WithRulesYAML overrides rule tables from a YAML document. Sections
// absent from the document keep their defaults.
func WithRulesYAML(data []byte) Option {
	return func(cfg *Config) error {
		rs, err := rules.FromYAML(data)
		if err != nil {
			return err
		}
		cfg.Rules = rs
		return nil
	}
}

// WithRulesFile loads rule table overrides from a YAML file.
func WithRulesFile(path string) Option {
	return func(cfg *Config) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading rules file %s", path)
		}
		rs, err := rules.FromYAML(data)
		if err != nil {
			return err
		}
		cfg.Rules = rs
		return nil
	}
}

// WithFastNormalizer selects the pooled ASCII-table normalizer.
func WithFastNormalizer() Option {
	return func(cfg *Config) error {
		cfg.FastNormalizer = true
		return nil
	}
}

// WithParallel sets the number of workers rewriting candidate sentences.
func WithParallel(workers int) Option {
	return func(cfg *Config) error {
		cfg.Workers = workers
		return nil
	}
}

// WithWarmUp pre-exercises the pipeline at construction time.
func WithWarmUp() Option {
	return func(cfg *Config) error {
		cfg.WarmUp = true
		return nil
	}
}

// WithWarmUpConfig enables warm-up with a custom configuration.
func WithWarmUpConfig(wc warmup.Config) Option {
	return func(cfg *Config) error {
		cfg.WarmUp = true
		cfg.WarmUpConfig = wc
		return nil
	}
}

// Generator converts case-study text into SNL requirements using
// configurable rule tables.
type Generator struct {
	config   Config
	pipeline *snl.Generator
	batch    *stream.BatchProcessor
}

// New creates a new Generator with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*Generator, error) {
	cfg := Config{
		Rules:        rules.Default(),
		Workers:      1,
		WarmUpConfig: warmup.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	// If no logger is set, create a default logger.
	if cfg.Logger == nil {
		defaultLogger, err := createDefaultLogger()
		if err != nil {
			return nil, errors.Wrap(err, "creating default logger")
		}
		cfg.Logger = defaultLogger
	}
	log := logger.FromExisting(cfg.Logger)

	factory := normalizer.NewNormalizerFactory(cfg.Rules.Normalize)
	normType := normalizer.DefaultNormalizerType
	if cfg.FastNormalizer {
		normType = normalizer.FastNormalizerType
	}
	norm := factory.CreateNormalizer(normType)

	pipeline, err := snl.NewGenerator(
		cfg.Rules,
		snl.Config{Workers: cfg.Workers},
		log,
		norm,
		actors.NewIdentifier(cfg.Rules.Actors),
		segment.NewSegmenter(cfg.Rules.Segment),
	)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		config:   cfg,
		pipeline: pipeline,
		batch:    stream.NewBatchProcessor(log, pipeline, cfg.Workers),
	}

	if cfg.WarmUp {
		manager := warmup.NewManager(log, cfg.WarmUpConfig)
		manager.RegisterNormalizer(norm)
		manager.RegisterGenerator(pipeline)
		manager.WarmUp(context.Background())
	}
	return g, nil
}

// Generate converts one case-study text into SNL requirements. Failures
// surface in Result.Error rather than as a Go error, so the call is total
// over its input.
func (g *Generator) Generate(ctx context.Context, text string) Result {
	return g.pipeline.Generate(ctx, text)
}

// GenerateBatch processes many documents, preserving input order.
func (g *Generator) GenerateBatch(ctx context.Context, documents []string) []Result {
	return g.batch.ProcessAll(ctx, documents)
}

// GenerateFromReader reads blank-line-separated documents and processes
// each one.
func (g *Generator) GenerateFromReader(ctx context.Context, reader io.Reader) ([]Result, error) {
	return g.batch.ProcessReader(ctx, reader)
}

// Rules returns the rule tables the generator was built with.
func (g *Generator) Rules() rules.RuleSet {
	return g.config.Rules
}

// GenerateWithDefaults runs one generation with the default rule tables
// and logger. For repeated use, build a Generator once instead.
func GenerateWithDefaults(ctx context.Context, text string) (Result, error) {
	g, err := New()
	if err != nil {
		return Result{}, err
	}
	return g.Generate(ctx, text), nil
}

// DefaultRules returns a copy of the built-in rule tables.
func DefaultRules() rules.RuleSet {
	return rules.Default()
}

// DefaultRulesYAML dumps the built-in rule tables as YAML, a starting
// point for domain-specific overrides.
func DefaultRulesYAML() ([]byte, error) {
	return rules.ToYAML(rules.Default())
}
