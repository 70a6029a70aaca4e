// Package rules holds the static rule tables driving the SNL pipeline.
// A RuleSet is an immutable configuration value passed explicitly into the
// pipeline; nothing in the core mutates it after construction, so one
// RuleSet can back any number of concurrent generators.
package rules

import (
	"github.com/cockroachdb/errors"
)

// Replacement is one literal substring substitution, applied in table order.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ActorSignal maps a whole-text substring to a canonical actor, e.g. the
// presence of "admin" anywhere maps to "administrator".
type ActorSignal struct {
	Substring string `yaml:"substring"`
	Actor     string `yaml:"actor"`
}

// VerbMapping maps a surface verb form to its canonical base verb.
type VerbMapping struct {
	Variant string `yaml:"variant"`
	Base    string `yaml:"base"`
}

// ActorRules configures actor identification.
type ActorRules struct {
	// Vocabulary is the closed set of valid actor tokens.
	Vocabulary []string `yaml:"vocabulary"`
	// Signals are whole-text substring checks evaluated in order.
	Signals []ActorSignal `yaml:"signals"`
}

// NormalizeRules configures text normalization.
type NormalizeRules struct {
	// Contractions are expanded by literal substring replacement,
	// applied for every entry regardless of word boundaries.
	Contractions []Replacement `yaml:"contractions"`
	// Abbreviations are literal replacements applied as the final
	// normalization step, after whitespace collapsing.
	Abbreviations []Replacement `yaml:"abbreviations"`
}

// SegmentRules configures sentence segmentation.
type SegmentRules struct {
	// ActionVerbs gate the compound-"and" secondary split.
	ActionVerbs []string `yaml:"action_verbs"`
	// SubjectPriority is the tie-break order for the carried subject of a
	// compound split. First match in this order wins.
	SubjectPriority []string `yaml:"subject_priority"`
	// NoisePhrases is the blocklist of boilerplate fragments dropped
	// during the final candidate filter.
	NoisePhrases []string `yaml:"noise_phrases"`
	// MinLength is the minimum fragment length; shorter fragments are
	// discarded.
	MinLength int `yaml:"min_length"`
}

// ClassifyRules configures the ordered template classifier. All membership
// tests are substring tests on the lowercased sentence.
type ClassifyRules struct {
	SystemVerbs      []string `yaml:"system_verbs"`
	InteractionVerbs []string `yaml:"interaction_verbs"`
	ModalVerbs       []string `yaml:"modal_verbs"`
	FeatureWords     []string `yaml:"feature_words"`
	StateWords       []string `yaml:"state_words"`
	ValidationWords  []string `yaml:"validation_words"`
}

// RewriteRules configures the template rewriters.
type RewriteRules struct {
	// VerbCanon maps system-capability verb surface forms to base verbs.
	// Order matters: the first variant found in the sentence wins, so
	// longer forms ("displays") precede their stems ("display").
	VerbCanon []VerbMapping `yaml:"verb_canon"`
	// ModalVerbs are searched in order by the modal rewriter.
	ModalVerbs []string `yaml:"modal_verbs"`
	// StripModals are leading modals removed from a user action.
	StripModals []string `yaml:"strip_modals"`
	// InteractionVerbs are canonicalized when leading a user action
	// ("clicks" -> "click ").
	InteractionVerbs []string `yaml:"interaction_verbs"`
	// NounCues trigger a leading "the " on a user action object.
	NounCues []string `yaml:"noun_cues"`
	// Articles are the leading words that suppress the NounCues rule.
	Articles []string `yaml:"articles"`
	// FeatureWords are searched in order by the feature rewriter.
	FeatureWords []string `yaml:"feature_words"`
	// StateWords are searched in order by the state rewriter.
	StateWords []string `yaml:"state_words"`
	// ValidationWords are searched in order by the validation rewriter.
	ValidationWords []string `yaml:"validation_words"`
}

// AssembleRules configures the cross-sentence result assembly.
type AssembleRules struct {
	// MinRequirementLength drops generated requirements at or below this
	// many characters.
	MinRequirementLength int `yaml:"min_requirement_length"`
}

// RuleSet bundles every rule table of the pipeline.
type RuleSet struct {
	Actors    ActorRules     `yaml:"actors"`
	Normalize NormalizeRules `yaml:"normalize"`
	Segment   SegmentRules   `yaml:"segment"`
	Classify  ClassifyRules  `yaml:"classify"`
	Rewrite   RewriteRules   `yaml:"rewrite"`
	Assemble  AssembleRules  `yaml:"assemble"`
}

// Validate checks that the rule tables are usable.
func (rs RuleSet) Validate() error {
	if len(rs.Actors.Vocabulary) == 0 {
		return errors.New("actor vocabulary must not be empty")
	}
	vocab := make(map[string]struct{}, len(rs.Actors.Vocabulary))
	for _, a := range rs.Actors.Vocabulary {
		if a == "" {
			return errors.New("actor vocabulary contains an empty token")
		}
		vocab[a] = struct{}{}
	}
	for _, sig := range rs.Actors.Signals {
		if sig.Substring == "" {
			return errors.Newf("actor signal for %q has an empty substring", sig.Actor)
		}
		if _, ok := vocab[sig.Actor]; !ok {
			return errors.Newf("actor signal %q maps to %q, which is outside the vocabulary", sig.Substring, sig.Actor)
		}
	}
	for _, r := range rs.Normalize.Contractions {
		if r.From == "" {
			return errors.New("contraction table contains an empty pattern")
		}
	}
	for _, r := range rs.Normalize.Abbreviations {
		if r.From == "" {
			return errors.New("abbreviation table contains an empty pattern")
		}
	}
	for _, s := range rs.Segment.SubjectPriority {
		if _, ok := vocab[s]; !ok {
			return errors.Newf("subject priority entry %q is outside the actor vocabulary", s)
		}
	}
	if rs.Segment.MinLength < 0 {
		return errors.New("segment min_length must not be negative")
	}
	if len(rs.Classify.SystemVerbs) == 0 {
		return errors.New("classifier system verb table must not be empty")
	}
	for _, vm := range rs.Rewrite.VerbCanon {
		if vm.Variant == "" || vm.Base == "" {
			return errors.New("verb canon table contains an empty mapping")
		}
	}
	if rs.Assemble.MinRequirementLength < 0 {
		return errors.New("assemble min_requirement_length must not be negative")
	}
	return nil
}

// Default returns the built-in rule tables.
func Default() RuleSet {
	return RuleSet{
		Actors: ActorRules{
			Vocabulary: []string{"administrator", "guest", "librarian", "member", "system", "user"},
			Signals: []ActorSignal{
				{Substring: "system", Actor: "system"},
				{Substring: "user", Actor: "user"},
				{Substring: "member", Actor: "member"},
				{Substring: "librarian", Actor: "librarian"},
				{Substring: "administrator", Actor: "administrator"},
				{Substring: "admin", Actor: "administrator"},
				{Substring: "guest", Actor: "guest"},
			},
		},
		Normalize: NormalizeRules{
			Contractions: []Replacement{
				{From: "can't", To: "cannot"},
				{From: "won't", To: "will not"},
				{From: "don't", To: "do not"},
				{From: "isn't", To: "is not"},
				{From: "aren't", To: "are not"},
				{From: "wasn't", To: "was not"},
				{From: "weren't", To: "were not"},
				{From: "haven't", To: "have not"},
				{From: "hasn't", To: "has not"},
				{From: "wouldn't", To: "would not"},
				{From: "shouldn't", To: "should not"},
				{From: "couldn't", To: "could not"},
			},
			Abbreviations: []Replacement{
				{From: "guest user", To: "guest-user"},
				{From: "into", To: "in to"},
			},
		},
		Segment: SegmentRules{
			ActionVerbs: []string{
				"clicks", "enters", "displays", "shows", "checks", "validates",
				"asks", "opens", "closes", "selects", "returns", "issues",
				"reserves", "adds", "removes", "updates", "stores", "retrieves",
				"prompts",
			},
			SubjectPriority: []string{"system", "member", "user", "librarian", "administrator", "guest"},
			NoisePhrases: []string{
				"the details include", "details include", "include the total",
				"total number of", "date of issue", "return date", "fine to be paid",
			},
			MinLength: 4,
		},
		Classify: ClassifyRules{
			SystemVerbs: []string{
				"display", "show", "validate", "process", "store", "retrieve",
				"calculate", "generate", "check", "ask", "prompt", "open",
				"close", "update", "enter", "select",
			},
			InteractionVerbs: []string{"click", "enter", "select", "view", "browse", "search"},
			ModalVerbs:       []string{"should", "must", "can", "will", "shall", "may"},
			FeatureWords:     []string{"feature", "function", "capability", "service"},
			StateWords:       []string{"available", "ready", "logged in", "valid", "correct"},
			ValidationWords:  []string{"validate", "check", "verify", "confirm"},
		},
		Rewrite: RewriteRules{
			VerbCanon: []VerbMapping{
				{Variant: "displays", Base: "display"},
				{Variant: "display", Base: "display"},
				{Variant: "shows", Base: "display"},
				{Variant: "show", Base: "display"},
				{Variant: "validates", Base: "validate"},
				{Variant: "validate", Base: "validate"},
				{Variant: "checks", Base: "validate"},
				{Variant: "check", Base: "validate"},
				{Variant: "processes", Base: "process"},
				{Variant: "process", Base: "process"},
				{Variant: "handles", Base: "process"},
				{Variant: "handle", Base: "process"},
				{Variant: "stores", Base: "store"},
				{Variant: "store", Base: "store"},
				{Variant: "saves", Base: "store"},
				{Variant: "save", Base: "store"},
				{Variant: "retrieves", Base: "retrieve"},
				{Variant: "retrieve", Base: "retrieve"},
				{Variant: "fetches", Base: "retrieve"},
				{Variant: "fetch", Base: "retrieve"},
				{Variant: "asks", Base: "ask"},
				{Variant: "ask", Base: "ask"},
				{Variant: "prompts", Base: "prompt"},
				{Variant: "prompt", Base: "prompt"},
				{Variant: "opens", Base: "open"},
				{Variant: "open", Base: "open"},
				{Variant: "closes", Base: "close"},
				{Variant: "close", Base: "close"},
				{Variant: "updates", Base: "update"},
				{Variant: "update", Base: "update"},
				{Variant: "enters", Base: "accept"},
				{Variant: "enter", Base: "accept"},
			},
			ModalVerbs:       []string{"should", "must", "can", "will", "shall", "may", "could", "would"},
			StripModals:      []string{"can", "will", "should", "must", "may"},
			InteractionVerbs: []string{"click", "enter", "select", "type", "view", "browse"},
			NounCues:         []string{"button", "page", "details", "information", "books"},
			Articles:         []string{"the", "a", "an", "their", "his", "her"},
			FeatureWords:     []string{"feature", "function", "capability", "service", "interface", "component"},
			StateWords:       []string{"available", "ready", "logged in", "valid", "correct", "stored", "retrieved"},
			ValidationWords:  []string{"validate", "check", "verify", "confirm", "authenticate"},
		},
		Assemble: AssembleRules{
			MinRequirementLength: 20,
		},
	}
}
