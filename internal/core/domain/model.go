package domain

// TemplateKind is the closed set of RUPP template categories. Exactly one
// kind is assigned to every candidate sentence; Default always matches, so
// assignment is total.
type TemplateKind int

const (
	KindConditional TemplateKind = iota
	KindWhen
	KindSystemCapability
	KindUserAction
	KindModal
	KindFeature
	KindState
	KindValidation
	KindDefault
)

var kindNames = [...]string{
	"conditional",
	"when",
	"system_capability",
	"user_action",
	"modal",
	"feature",
	"state",
	"validation",
	"default",
}

func (k TemplateKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Candidate is one segment of normalized input text considered for
// conversion into a requirement. Ordinal is the 1-based position in the
// final deduplicated candidate sequence.
type Candidate struct {
	Ordinal int
	Text    string
}

// Requirement is a single generated SNL statement. Text always begins with
// "If ", "When ", or "The system shall" and ends with a period.
type Requirement struct {
	Text          string
	SourceOrdinal int
	Kind          TemplateKind
}

// Stats summarises one pipeline run.
type Stats struct {
	// InputSentences is the number of candidate sentences that survived
	// segmentation, dedup, and noise filtering.
	InputSentences int
	// RawGenerated counts requirement strings produced by the rewriters
	// before cross-sentence filtering.
	RawGenerated int
	// UniqueGenerated is the length of the final requirement list.
	UniqueGenerated int
	// ActorCount is the number of distinct actors identified.
	ActorCount int
}

// Result holds the outcome of one SNL generation run.
type Result struct {
	// Requirements is the ordered, duplicate-free requirement list.
	Requirements []Requirement
	// Actors is the sorted set of actors found in the raw input.
	Actors []string
	// Stats holds the run counters.
	Stats Stats
	// SNLText is the newline-joined requirement text block.
	SNLText string
	// FormattedSNL is the numbered "1. ..." rendering of SNLText.
	FormattedSNL string
	// PreprocessedText is the normalizer output, kept for traceability.
	PreprocessedText string
	// Error is non-empty when the pipeline failed as a whole. A failed
	// result carries no requirements.
	Error string
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}

// Failed reports whether the run ended in a pipeline-level failure.
func (r Result) Failed() bool {
	return r.Error != ""
}
