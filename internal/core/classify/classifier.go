// Package classify assigns exactly one template kind to each candidate
// sentence.
//
// The rules form an ordered list evaluated top to bottom; the first match
// wins and later rules are never consulted. The order is load-bearing:
// re-ordering changes class assignments, so the list is a single explicit
// value rather than scattered control flow. Default always matches, which
// makes the assignment total.
package classify

import (
	"strings"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
)

// rule pairs a predicate with the kind it selects.
type rule struct {
	kind  domain.TemplateKind
	match func(sentence string, actors []string) bool
}

// Classifier assigns template kinds via the ordered rule list. All
// membership tests are substring tests on the lowercased sentence.
type Classifier struct {
	ordered []rule
}

// NewClassifier builds the ordered rule list from the given tables.
func NewClassifier(cr rules.ClassifyRules) *Classifier {
	return &Classifier{ordered: []rule{
		{domain.KindConditional, func(s string, _ []string) bool {
			return strings.Contains(s, "if") && (strings.Contains(s, "then") || strings.Contains(s, ","))
		}},
		{domain.KindWhen, func(s string, _ []string) bool {
			return strings.HasPrefix(s, "when ")
		}},
		{domain.KindSystemCapability, func(s string, _ []string) bool {
			return containsAny(s, cr.SystemVerbs)
		}},
		{domain.KindUserAction, func(s string, actors []string) bool {
			for _, actor := range actors {
				if actor != "system" && strings.Contains(s, actor) {
					return true
				}
			}
			return containsAny(s, cr.InteractionVerbs)
		}},
		{domain.KindModal, func(s string, _ []string) bool {
			return containsAny(s, cr.ModalVerbs)
		}},
		{domain.KindFeature, func(s string, _ []string) bool {
			return containsAny(s, cr.FeatureWords)
		}},
		{domain.KindState, func(s string, _ []string) bool {
			return containsAny(s, cr.StateWords)
		}},
		{domain.KindValidation, func(s string, _ []string) bool {
			return containsAny(s, cr.ValidationWords)
		}},
		{domain.KindDefault, func(_ string, _ []string) bool {
			return true
		}},
	}}
}

// Classify returns the template kind for the sentence. Actors is the
// document-level actor set, consulted only by the user-action rule.
func (c *Classifier) Classify(sentence string, actors []string) domain.TemplateKind {
	lower := strings.ToLower(sentence)
	for _, r := range c.ordered {
		if r.match(lower, actors) {
			return r.kind
		}
	}
	return domain.KindDefault
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
