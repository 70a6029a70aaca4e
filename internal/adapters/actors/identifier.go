// Package actors identifies requirement actors in raw case-study text
// against a closed, injectable vocabulary.
package actors

import (
	"sort"
	"strings"

	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
	"github.com/baditaflorin/go_snl_generator/internal/ports"
)

// Identifier scans text for actor tokens. Two passes run over the input:
// a word-level membership check against the vocabulary, and whole-text
// substring signals for multi-surface actors (e.g. "admin" anywhere maps
// to "administrator").
type Identifier struct {
	vocabulary map[string]struct{}
	signals    []rules.ActorSignal
}

// NewIdentifier creates an identifier backed by the given actor rules.
func NewIdentifier(ar rules.ActorRules) ports.ActorIdentifier {
	vocab := make(map[string]struct{}, len(ar.Vocabulary))
	for _, a := range ar.Vocabulary {
		vocab[a] = struct{}{}
	}
	return &Identifier{
		vocabulary: vocab,
		signals:    ar.Signals,
	}
}

// Identify returns the sorted, duplicate-free set of actors found in the
// text. Matching is case-insensitive and side-effect-free.
func (id *Identifier) Identify(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})

	for _, word := range strings.Fields(lower) {
		clean := stripNonLetters(word)
		if _, ok := id.vocabulary[clean]; ok {
			found[clean] = struct{}{}
		}
	}

	for _, sig := range id.signals {
		if strings.Contains(lower, sig.Substring) {
			found[sig.Actor] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for actor := range found {
		out = append(out, actor)
	}
	sort.Strings(out)
	return out
}

func stripNonLetters(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
