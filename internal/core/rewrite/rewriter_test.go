package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
)

func newTestRewriter() *Rewriter {
	rs := rules.Default()
	return NewRewriter(rs.Rewrite, rs.Actors)
}

func rewrite(t *testing.T, text string, kind domain.TemplateKind, actors ...string) string {
	t.Helper()
	r := newTestRewriter()
	req := r.Rewrite(domain.Candidate{Ordinal: 1, Text: text}, kind, actors)
	assert.Equal(t, kind, req.Kind)
	assert.Equal(t, 1, req.SourceOrdinal)
	return req.Text
}

func TestConditional(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "then split",
			in:   "if the entered information is wrong then system asks member to reenter the details",
			want: "If the entered information is wrong, then the system shall asks member to reenter the details.",
		},
		{
			name: "system modal stripped from consequence",
			in:   "if the password is wrong then the system should ask again",
			want: "If the password is wrong, then the system shall ask again.",
		},
		{
			name: "comma split",
			in:   "if the password matches, access is granted",
			want: "If the password matches, then the system shall access is granted.",
		},
		{
			name: "empty consequence falls back",
			in:   "if the book is reserved then the system",
			want: "If the book is reserved, then the system shall respond appropriately.",
		},
		{
			name: "no split point falls back",
			in:   "verify the identifier",
			want: "The system shall handle the condition: verify the identifier.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rewrite(t, tc.in, domain.KindConditional))
		})
	}
}

func TestWhen(t *testing.T) {
	got := rewrite(t, "when the member scans the card the gate opens", domain.KindWhen)
	// The consequent action is deliberately discarded.
	assert.Equal(t, "When the member scans the card the gate opens, the system shall be able to respond appropriately.", got)

	got = rewrite(t, "the gate opens", domain.KindWhen)
	assert.Equal(t, "The system shall handle the scenario: the gate opens.", got)
}

func TestSystemCapability(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "validate gains article",
			in:   "the system validates credentials",
			want: "The system shall be able to validate the credentials.",
		},
		{
			name: "shows maps to display",
			in:   "the system shows ok message",
			want: "The system shall be able to display the ok message.",
		},
		{
			name: "ask gains user-to prefix",
			in:   "the system asks for the book id",
			want: "The system shall be able to ask the user to for the book id.",
		},
		{
			name: "empty object falls back",
			in:   "the system validates",
			want: "The system shall be able to validate the required information.",
		},
		{
			name: "verb outside canon table",
			in:   "the system generates a report",
			want: "The system shall be able to generates a report.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rewrite(t, tc.in, domain.KindSystemCapability))
		})
	}
}

func TestUserAction(t *testing.T) {
	actors := []string{"member", "system", "user"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "interaction verb canonicalized and noun cue articled",
			in:   "the member clicks login button",
			want: "The system shall provide member with the ability to the click login button.",
		},
		{
			name: "leading modal stripped",
			in:   "the member can view the fine details",
			want: "The system shall provide member with the ability to the view the fine details.",
		},
		{
			name: "no actor falls back to users",
			in:   "the system browse shelf list",
			want: "The system shall provide users with the ability to browse shelf list.",
		},
		{
			name: "empty action falls back",
			in:   "the member",
			want: "The system shall provide member with the required functionality.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rewrite(t, tc.in, domain.KindUserAction, actors...))
		})
	}
}

func TestModal(t *testing.T) {
	got := rewrite(t, "the books must be ready to retrieve", domain.KindModal)
	assert.Equal(t, "The system shall be ready to retrieve.", got)

	// "should" is searched before "must".
	got = rewrite(t, "the fine should be paid and must be logged", domain.KindModal)
	assert.Equal(t, "The system shall be paid and must be logged.", got)
}

func TestFeatureStateValidation(t *testing.T) {
	got := rewrite(t, "a reminder feature is planned", domain.KindFeature)
	assert.Equal(t, "The system shall provide the feature described as: a reminder feature is planned.", got)

	got = rewrite(t, "the account is logged in", domain.KindState)
	assert.Equal(t, "The system shall ensure that the account is logged in.", got)

	got = rewrite(t, "verify the member id", domain.KindValidation)
	assert.Equal(t, "The system shall verify the member id.", got)
}

func TestDefault(t *testing.T) {
	actors := []string{"member", "system"}

	got := rewrite(t, "the member owns two cards", domain.KindDefault, actors...)
	assert.Equal(t, "The system shall support the requirement: the member owns two cards.", got)

	got = rewrite(t, "the library has two floors", domain.KindDefault, actors...)
	assert.Equal(t, "The system shall be able to the library has two floors.", got)
}

func TestPrefixInvariant(t *testing.T) {
	r := newTestRewriter()
	actors := []string{"member", "system", "user"}

	sentences := []string{
		"if the id is wrong then the system asks again",
		"when the page loads the form appears",
		"the system validates credentials",
		"the member clicks login button",
		"the books must be ready",
		"a search feature exists",
		"the account is logged in",
		"verify the member id",
		"the library has two floors",
		"",
	}
	kinds := []domain.TemplateKind{
		domain.KindConditional, domain.KindWhen, domain.KindSystemCapability,
		domain.KindUserAction, domain.KindModal, domain.KindFeature,
		domain.KindState, domain.KindValidation, domain.KindDefault,
	}

	for _, s := range sentences {
		for _, k := range kinds {
			req := r.Rewrite(domain.Candidate{Ordinal: 1, Text: s}, k, actors)
			ok := strings.HasPrefix(req.Text, "If ") ||
				strings.HasPrefix(req.Text, "When ") ||
				strings.HasPrefix(req.Text, "The system shall")
			assert.True(t, ok, "bad prefix for kind %v on %q: %q", k, s, req.Text)
			assert.True(t, strings.HasSuffix(req.Text, "."), "missing period: %q", req.Text)
		}
	}
}
