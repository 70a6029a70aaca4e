package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
	"github.com/baditaflorin/go_snl_generator/internal/pool"
	"github.com/baditaflorin/go_snl_generator/internal/ports"
)

// Character classes for the ASCII decision table.
const (
	classKeep  = 0
	classSpace = 1
	classLower = 2
	classDrop  = 3
)

// FastNormalizer produces the same output as DefaultNormalizer using a
// pre-computed ASCII decision table and pooled buffers for the strip and
// collapse stage. Suited to servers normalizing many documents.
type FastNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool

	contractions  []rules.Replacement
	abbreviations []rules.Replacement
}

// NewFastNormalizer creates a fast normalizer backed by the given tables.
func NewFastNormalizer(nr rules.NormalizeRules) ports.Normalizer {
	n := &FastNormalizer{
		bytePool:      pool.NewBufferPool(8192),
		contractions:  nr.Contractions,
		abbreviations: nr.Abbreviations,
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			n.asciiTable[i] = classSpace
		case r >= 'A' && r <= 'Z':
			n.asciiTable[i] = classLower
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-':
			n.asciiTable[i] = classKeep
		default:
			n.asciiTable[i] = classDrop
		}
	}

	return n
}

// Normalize applies the same normalization order as DefaultNormalizer,
// with an ASCII fast path for the strip and collapse stage.
func (n *FastNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "&", "and")
	for _, c := range n.contractions {
		text = strings.ReplaceAll(text, c.From, c.To)
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	lastWasSpace := true
	for _, r := range text {
		if r < 128 {
			switch n.asciiTable[r] {
			case classKeep:
				*buffer = append(*buffer, byte(r))
				lastWasSpace = false
			case classLower:
				*buffer = append(*buffer, byte(r)+('a'-'A'))
				lastWasSpace = false
			case classSpace:
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			}
			continue
		}
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				*buffer = append(*buffer, ' ')
				lastWasSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			lower := unicode.ToLower(r)
			*buffer = append(*buffer, []byte(string(lower))...)
			lastWasSpace = false
		}
	}

	out := strings.TrimRight(string(*buffer), " ")
	for _, a := range n.abbreviations {
		out = strings.ReplaceAll(out, a.From, a.To)
	}
	return out
}

// NormalizerType selects a normalization strategy.
type NormalizerType int

const (
	// DefaultNormalizerType is the straightforward rune-loop strategy.
	DefaultNormalizerType NormalizerType = iota
	// FastNormalizerType uses a precomputed ASCII table and pooled buffers.
	FastNormalizerType
)

// NormalizerFactory creates normalizers for a fixed rule table.
type NormalizerFactory struct {
	rules rules.NormalizeRules
}

// NewNormalizerFactory creates a factory bound to the given tables.
func NewNormalizerFactory(nr rules.NormalizeRules) *NormalizerFactory {
	return &NormalizerFactory{rules: nr}
}

// CreateNormalizer creates a normalizer of the specified type.
func (f *NormalizerFactory) CreateNormalizer(t NormalizerType) ports.Normalizer {
	switch t {
	case FastNormalizerType:
		return NewFastNormalizer(f.rules)
	default:
		return NewDefaultNormalizer(f.rules)
	}
}
