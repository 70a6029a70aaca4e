// Package rewrite produces the canonical requirement string for a
// classified candidate sentence.
//
// Every extraction step that can come up empty falls back to a named
// generic phrase instead of omitting the requirement or failing, so the
// rewrite is total over its inputs.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
)

// Fallback phrases for empty extractions.
const (
	fallbackConsequence = "respond appropriately"
	fallbackObject      = "the required information"
	fallbackAction      = "perform the required action"
)

// Rewriter turns (candidate, kind, actors) triples into requirements.
type Rewriter struct {
	rules rules.RewriteRules

	reLeadSubject    *regexp.Regexp // e.g. ^the (system|member|...)
	reLeadSysModal   *regexp.Regexp // ^(the )?system (shall|should|will|can)
	reLeadSystem     *regexp.Regexp // ^(the )?system
	reLeadArtifact   *regexp.Regexp // ^(s |ing ) left over from verb matching
	reLeadThe        *regexp.Regexp
	reLeadStripModal *regexp.Regexp
	reLeadUserPrefix *regexp.Regexp
	interactionRes   []interactionRule
}

type interactionRule struct {
	re   *regexp.Regexp
	base string
}

// NewRewriter compiles the rewrite rules. The actor vocabulary feeds the
// leading-subject strip so new domains need no code change.
func NewRewriter(rr rules.RewriteRules, ar rules.ActorRules) *Rewriter {
	r := &Rewriter{
		rules:            rr,
		reLeadSubject:    regexp.MustCompile(`^the (` + quoteJoin(ar.Vocabulary) + `)`),
		reLeadSysModal:   regexp.MustCompile(`^(the )?system (shall|should|will|can)`),
		reLeadSystem:     regexp.MustCompile(`^(the )?system`),
		reLeadArtifact:   regexp.MustCompile(`^(s\s|ing\s)`),
		reLeadThe:        regexp.MustCompile(`^\s*the\s+`),
		reLeadUserPrefix: regexp.MustCompile(`^(the\s+)?(system\s+)?`),
	}
	if len(rr.StripModals) > 0 {
		r.reLeadStripModal = regexp.MustCompile(`^(` + quoteJoin(rr.StripModals) + `)\s+`)
	}
	for _, base := range rr.InteractionVerbs {
		r.interactionRes = append(r.interactionRes, interactionRule{
			re:   regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `s?\s+`),
			base: base,
		})
	}
	return r
}

// Rewrite produces the requirement for one classified candidate.
func (r *Rewriter) Rewrite(c domain.Candidate, kind domain.TemplateKind, actors []string) domain.Requirement {
	s := strings.ToLower(strings.TrimSpace(c.Text))

	var text string
	switch kind {
	case domain.KindConditional:
		text = r.conditional(s)
	case domain.KindWhen:
		text = r.when(s)
	case domain.KindSystemCapability:
		text = r.systemCapability(s)
	case domain.KindUserAction:
		text = r.userAction(s, actors)
	case domain.KindModal:
		text = r.modal(s)
	case domain.KindFeature:
		text = r.feature(s)
	case domain.KindState:
		text = r.state(s)
	case domain.KindValidation:
		text = r.validation(s)
	default:
		text = r.defaultTemplate(s, actors)
	}

	return domain.Requirement{
		Text:          text,
		SourceOrdinal: c.Ordinal,
		Kind:          kind,
	}
}

// conditional splits at " then " when present, else at the first comma.
// The right-hand side loses any leading "the system shall/should/will/can"
// and then a bare leading "the system" before becoming the consequence.
func (r *Rewriter) conditional(s string) string {
	var condition, consequence string
	if idx := strings.Index(s, " then "); idx >= 0 {
		condition = stripLeadingIf(s[:idx])
		consequence = strings.TrimSpace(s[idx+len(" then "):])
	} else if idx := strings.Index(s, ","); idx >= 0 {
		condition = stripLeadingIf(s[:idx])
		consequence = strings.TrimSpace(s[idx+1:])
	} else {
		return fmt.Sprintf("The system shall handle the condition: %s.", s)
	}

	consequence = strings.TrimSpace(r.reLeadSysModal.ReplaceAllString(consequence, ""))
	consequence = strings.TrimSpace(r.reLeadSystem.ReplaceAllString(consequence, ""))

	if consequence == "" {
		consequence = fallbackConsequence
	}
	return fmt.Sprintf("If %s, then the system shall %s.", condition, consequence)
}

// when deliberately discards the consequent action: downstream comparison
// expects the fixed "respond appropriately" shape.
func (r *Rewriter) when(s string) string {
	if !strings.HasPrefix(s, "when ") {
		return fmt.Sprintf("The system shall handle the scenario: %s.", s)
	}
	rest := strings.TrimSpace(s[len("when "):])
	if rest == "" {
		rest = fallbackConsequence
	}
	return fmt.Sprintf("When %s, the system shall be able to respond appropriately.", rest)
}

func (r *Rewriter) systemCapability(s string) string {
	clean := s
	if loc := r.reLeadSubject.FindStringIndex(clean); loc != nil {
		clean = strings.TrimSpace(clean[loc[1]:])
	}

	for _, vm := range r.rules.VerbCanon {
		idx := strings.Index(clean, vm.Variant)
		if idx < 0 {
			continue
		}
		object := strings.TrimSpace(clean[idx+len(vm.Variant):])
		object = strings.TrimSpace(r.reLeadArtifact.ReplaceAllString(object, ""))
		if m := r.reLeadThe.FindString(object); m != "" {
			object = "the " + object[len(m):]
		}

		if object == "" {
			return fmt.Sprintf("The system shall be able to %s %s.", vm.Base, fallbackObject)
		}

		switch vm.Base {
		case "ask", "prompt":
			if !strings.Contains(object, "to") {
				object = "the user to " + object
			}
		case "display":
			if !strings.HasPrefix(object, "the ") {
				object = "the " + object
			}
		case "validate":
			if !strings.HasPrefix(object, "the ") && !strings.HasPrefix(object, "that ") {
				object = "the " + object
			}
		}
		return fmt.Sprintf("The system shall be able to %s %s.", vm.Base, object)
	}

	if clean == "" {
		return fmt.Sprintf("The system shall be able to %s.", fallbackAction)
	}
	return fmt.Sprintf("The system shall be able to %s.", clean)
}

func (r *Rewriter) userAction(s string, actors []string) string {
	clean := s
	if m := r.reLeadThe.FindString(clean); m != "" {
		clean = clean[len(m):]
	}

	for _, actor := range actors {
		if actor == "system" {
			continue
		}
		idx := strings.Index(clean, actor)
		if idx < 0 {
			continue
		}
		action := strings.TrimSpace(clean[idx+len(actor):])
		if r.reLeadStripModal != nil {
			action = r.reLeadStripModal.ReplaceAllString(action, "")
		}
		for _, ir := range r.interactionRes {
			action = ir.re.ReplaceAllString(action, ir.base+" ")
		}
		action = strings.TrimSpace(action)
		if strings.HasPrefix(action, "on ") {
			action = strings.TrimSpace(action[len("on "):])
		}
		if action == "" {
			return fmt.Sprintf("The system shall provide %s with the required functionality.", actor)
		}
		if !r.startsWithArticle(action) && containsAny(action, r.rules.NounCues) {
			action = "the " + action
		}
		return fmt.Sprintf("The system shall provide %s with the ability to %s.", actor, action)
	}

	action := strings.TrimSpace(r.reLeadUserPrefix.ReplaceAllString(clean, ""))
	if action == "" {
		return "The system shall provide users with the required functionality."
	}
	return fmt.Sprintf("The system shall provide users with the ability to %s.", action)
}

func (r *Rewriter) modal(s string) string {
	for _, modal := range r.rules.ModalVerbs {
		idx := strings.Index(s, modal)
		if idx < 0 {
			continue
		}
		after := strings.TrimSpace(s[idx+len(modal):])
		if after == "" {
			after = fallbackConsequence
		}
		return fmt.Sprintf("The system shall %s.", after)
	}
	return fmt.Sprintf("The system shall be able to %s.", s)
}

func (r *Rewriter) feature(s string) string {
	for _, word := range r.rules.FeatureWords {
		if strings.Contains(s, word) {
			return fmt.Sprintf("The system shall provide the %s described as: %s.", word, s)
		}
	}
	return fmt.Sprintf("The system shall implement: %s.", s)
}

func (r *Rewriter) state(s string) string {
	for _, word := range r.rules.StateWords {
		if strings.Contains(s, word) {
			return fmt.Sprintf("The system shall ensure that %s.", s)
		}
	}
	return fmt.Sprintf("The system shall maintain the state: %s.", s)
}

func (r *Rewriter) validation(s string) string {
	for _, word := range r.rules.ValidationWords {
		if !strings.Contains(s, word) {
			continue
		}
		remainder := strings.TrimSpace(strings.ReplaceAll(s, word, ""))
		if remainder == "" {
			remainder = fallbackObject
		}
		return fmt.Sprintf("The system shall %s %s.", word, remainder)
	}
	return fmt.Sprintf("The system shall validate: %s.", s)
}

func (r *Rewriter) defaultTemplate(s string, actors []string) string {
	for _, actor := range actors {
		if actor != "system" && strings.Contains(s, actor) {
			return fmt.Sprintf("The system shall support the requirement: %s.", s)
		}
	}
	if s == "" {
		return fmt.Sprintf("The system shall be able to %s.", fallbackAction)
	}
	return fmt.Sprintf("The system shall be able to %s.", s)
}

func (r *Rewriter) startsWithArticle(s string) bool {
	for _, article := range r.rules.Articles {
		if strings.HasPrefix(s, article+" ") {
			return true
		}
	}
	return false
}

func stripLeadingIf(s string) string {
	s = strings.TrimSpace(s)
	if s == "if" {
		return ""
	}
	if strings.HasPrefix(s, "if ") {
		return strings.TrimSpace(s[len("if "):])
	}
	return s
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func quoteJoin(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
