package ports

import (
	"context"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
)

// ActorIdentifier scans raw text for actors drawn from a closed vocabulary.
type ActorIdentifier interface {
	Identify(text string) []string
}

// Segmenter splits normalized text into ordered candidate sentences.
type Segmenter interface {
	Segment(text string) []domain.Candidate
}

// Generator defines the interface for the full SNL generation pipeline.
type Generator interface {
	Generate(ctx context.Context, text string) domain.Result
}
