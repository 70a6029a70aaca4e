// Package assemble enforces the cross-sentence invariants of the final
// requirement list: canonical lead-in phrases, minimum length, first-seen
// dedup, and the run counters.
package assemble

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
)

// Every surviving requirement starts with one of these phrases.
var canonicalPrefixes = []string{"If ", "When ", "The system shall"}

// Assembler packages requirements, actors, and counters into a Result.
type Assembler struct {
	rules rules.AssembleRules
}

// NewAssembler creates an assembler backed by the given rules.
func NewAssembler(ar rules.AssembleRules) *Assembler {
	return &Assembler{rules: ar}
}

// Assemble filters and deduplicates the generated requirements, keeping
// first occurrences in ordinal order, and computes the stats block.
func (a *Assembler) Assemble(candidates []domain.Candidate, generated []domain.Requirement, actors []string) domain.Result {
	seen := make(map[string]struct{}, len(generated))
	kept := make([]domain.Requirement, 0, len(generated))

	for _, req := range generated {
		if len(req.Text) <= a.rules.MinRequirementLength {
			continue
		}
		if !hasCanonicalPrefix(req.Text) {
			continue
		}
		if _, dup := seen[req.Text]; dup {
			continue
		}
		seen[req.Text] = struct{}{}
		kept = append(kept, req)
	}

	return domain.Result{
		Requirements: kept,
		Actors:       actors,
		Stats: domain.Stats{
			InputSentences:  len(candidates),
			RawGenerated:    len(generated),
			UniqueGenerated: len(kept),
			ActorCount:      len(actors),
		},
		SNLText:      joinTexts(kept),
		FormattedSNL: formatNumbered(kept),
	}
}

func hasCanonicalPrefix(text string) bool {
	for _, p := range canonicalPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

func joinTexts(reqs []domain.Requirement) string {
	var sb strings.Builder
	for i, r := range reqs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// formatNumbered renders the "1. ..." listing used for display.
func formatNumbered(reqs []domain.Requirement) string {
	var sb strings.Builder
	for i, r := range reqs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, r.Text)
	}
	return sb.String()
}
