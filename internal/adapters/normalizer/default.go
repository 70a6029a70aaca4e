package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
	"github.com/baditaflorin/go_snl_generator/internal/ports"
)

// DefaultNormalizer implements the canonical normalization strategy, in
// fixed order: lowercase, "&" expansion, contraction expansion, punctuation
// stripping, whitespace collapsing, abbreviation replacement. It is total:
// it never fails and performs no I/O.
type DefaultNormalizer struct {
	contractions  []rules.Replacement
	abbreviations []rules.Replacement
}

// NewDefaultNormalizer creates a normalizer backed by the given tables.
func NewDefaultNormalizer(nr rules.NormalizeRules) ports.Normalizer {
	return &DefaultNormalizer{
		contractions:  nr.Contractions,
		abbreviations: nr.Abbreviations,
	}
}

// Normalize produces the canonical lowercase form of the input. Only
// letters, digits, whitespace, '.', ',' and '-' survive; runs of whitespace
// collapse to a single space. Contraction entries are applied by literal
// substring replacement regardless of word boundaries. The result is stable
// under re-normalization.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "&", "and")
	for _, c := range n.contractions {
		text = strings.ReplaceAll(text, c.From, c.To)
	}

	var sb strings.Builder
	sb.Grow(len(text))
	lastWasSpace := true // swallows leading whitespace
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				sb.WriteByte(' ')
				lastWasSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == ',' || r == '-':
			sb.WriteRune(r)
			lastWasSpace = false
		}
	}
	out := strings.TrimRight(sb.String(), " ")

	for _, a := range n.abbreviations {
		out = strings.ReplaceAll(out, a.From, a.To)
	}
	return out
}
