// Package segment splits normalized case-study text into ordered,
// duplicate-free candidate sentences.
//
// Segmentation is additive: secondary splits on semicolons, compound "and"
// clauses, and causal "then" clauses contribute extra candidates alongside
// the parent sentence rather than replacing it. Ordinals are assigned only
// after the final dedup and noise filter, so they reflect positions in the
// final candidate sequence.
package segment

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
	"github.com/baditaflorin/go_snl_generator/internal/ports"
)

// Segmenter implements the candidate sentence extraction strategy.
type Segmenter struct {
	rules rules.SegmentRules
}

// NewSegmenter creates a segmenter backed by the given rules.
func NewSegmenter(sr rules.SegmentRules) ports.Segmenter {
	return &Segmenter{rules: sr}
}

// Segment extracts candidate sentences from normalized text.
func (s *Segmenter) Segment(text string) []domain.Candidate {
	var out []string

	for _, sentence := range s.primarySplit(text) {
		out = append(out, sentence)
		out = append(out, s.splitSemicolons(sentence)...)
		out = append(out, s.splitCompoundAnd(sentence)...)
		out = append(out, s.splitCausalThen(sentence)...)
	}

	out = dedupe(out)

	candidates := make([]domain.Candidate, 0, len(out))
	for _, sentence := range out {
		if !s.keep(sentence) {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Ordinal: len(candidates) + 1,
			Text:    sentence,
		})
	}
	return candidates
}

// primarySplit cuts the text at sentence-terminal punctuation followed by
// whitespace, guarding against single-letter abbreviations ("u.s. ") and
// decimal-like patterns ("3.5. "). Fragments keep no trailing terminator;
// fragments shorter than the configured minimum are discarded.
func (s *Segmenter) primarySplit(text string) []string {
	var fragments []string
	start := 0
	i := 0
	for i < len(text) {
		b := text[i]
		if isTerminator(b) && i+1 < len(text) && isSpaceByte(text[i+1]) && !abbreviationBefore(text, i+1) {
			fragments = append(fragments, text[start:i+1])
			j := i + 1
			for j < len(text) && isSpaceByte(text[j]) {
				j++
			}
			start, i = j, j
			continue
		}
		i++
	}
	if start < len(text) {
		fragments = append(fragments, text[start:])
	}

	cleaned := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(f), ".?!"))
		if len(f) >= s.rules.MinLength {
			cleaned = append(cleaned, f)
		}
	}
	return cleaned
}

// abbreviationBefore reports whether the whitespace at position p sits
// right after an abbreviation or decimal-like pattern rather than a real
// sentence boundary. Two guards: a word-dot-word-terminator run
// ("u.s.", "3.5."), and a capitalized two-letter abbreviation ("Mr.").
func abbreviationBefore(text string, p int) bool {
	if p >= 4 && isWordByte(text[p-4]) && text[p-3] == '.' && isWordByte(text[p-2]) {
		return true
	}
	if p >= 3 && isASCIIUpper(text[p-3]) && isASCIILower(text[p-2]) && text[p-1] == '.' {
		return true
	}
	return false
}

// splitSemicolons contributes semicolon-delimited sub-clauses as extra
// candidates. The parent sentence is retained by the caller.
func (s *Segmenter) splitSemicolons(sentence string) []string {
	if !strings.Contains(sentence, ";") {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(sentence, ";") {
		part = strings.TrimSpace(part)
		if len(part) >= s.rules.MinLength {
			parts = append(parts, part)
		}
	}
	return parts
}

// subjectCarry is the register holding the subject carried across compound
// split boundaries. It is updated only at boundaries, from the clause to
// the left of each split.
type subjectCarry struct {
	priority []string
	actor    string
	ok       bool
}

func (sc *subjectCarry) update(leftClause string) {
	for _, actor := range sc.priority {
		if strings.Contains(leftClause, actor) {
			sc.actor = actor
			sc.ok = true
			return
		}
	}
}

// splitCompoundAnd splits a compound sentence on " and " when an action
// verb marks the parts as separate requirements. Parts after the first get
// the carried subject prepended unless they already start with an article.
func (s *Segmenter) splitCompoundAnd(sentence string) []string {
	if !strings.Contains(sentence, " and ") || !containsAny(sentence, s.rules.ActionVerbs) {
		return nil
	}

	andParts := strings.Split(sentence, " and ")
	carry := subjectCarry{priority: s.rules.SubjectPriority}

	var parts []string
	for i, part := range andParts {
		if i > 0 {
			carry.update(andParts[i-1])
		}
		part = strings.TrimSpace(part)
		if len(part) < s.rules.MinLength {
			continue
		}
		if i > 0 && carry.ok && !startsWithArticle(part) {
			part = "the " + carry.actor + " " + part
		}
		parts = append(parts, part)
	}
	return parts
}

// splitCausalThen contributes each "then"-delimited clause as an extra
// candidate.
func (s *Segmenter) splitCausalThen(sentence string) []string {
	if !strings.Contains(sentence, " then ") {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(sentence, " then ") {
		part = strings.TrimSpace(part)
		if len(part) >= s.rules.MinLength {
			parts = append(parts, part)
		}
	}
	return parts
}

// keep applies the final candidate filter: minimum length, at least one
// letter, not purely numeric, and no boilerplate noise phrase.
func (s *Segmenter) keep(sentence string) bool {
	if len(sentence) < s.rules.MinLength {
		return false
	}
	if allDigits(sentence) || !hasLetter(sentence) {
		return false
	}
	lower := strings.ToLower(sentence)
	for _, phrase := range s.rules.NoisePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func startsWithArticle(s string) bool {
	return strings.HasPrefix(s, "the ") || strings.HasPrefix(s, "a ") || strings.HasPrefix(s, "an ")
}

func isTerminator(b byte) bool {
	return b == '.' || b == '?' || b == '!'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isWordByte treats multi-byte UTF-8 units as word characters.
func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_' || b >= 0x80
}

func isASCIIUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isASCIILower(b byte) bool { return b >= 'a' && b <= 'z' }

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
