package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(rules.Default().Classify)
	actors := []string{"member", "system", "user"}

	tests := []struct {
		name     string
		sentence string
		want     domain.TemplateKind
	}{
		{
			name:     "if with then",
			sentence: "if the id is wrong then the system asks again",
			want:     domain.KindConditional,
		},
		{
			name:     "if with comma",
			sentence: "if the password matches, access is granted",
			want:     domain.KindConditional,
		},
		{
			name:     "when prefix",
			sentence: "when the page loads the form appears",
			want:     domain.KindWhen,
		},
		{
			name:     "when not at start is not a when sentence",
			sentence: "the form appears when the page loads",
			want:     domain.KindDefault,
		},
		{
			name:     "system verb",
			sentence: "the system validates the entered information",
			want:     domain.KindSystemCapability,
		},
		{
			name:     "actor makes user action",
			sentence: "the member logs out",
			want:     domain.KindUserAction,
		},
		{
			name:     "interaction verb without actor",
			sentence: "browse the catalogue list",
			want:     domain.KindUserAction,
		},
		{
			name:     "modal",
			sentence: "the fine limit must not exceed ten",
			want:     domain.KindModal,
		},
		{
			name:     "feature",
			sentence: "a reminder feature is planned",
			want:     domain.KindFeature,
		},
		{
			name:     "state",
			sentence: "the account is logged in",
			want:     domain.KindState,
		},
		{
			name:     "default",
			sentence: "the library has two floors",
			want:     domain.KindDefault,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.sentence, actors))
		})
	}
}

func TestPriorityOrder(t *testing.T) {
	c := NewClassifier(rules.Default().Classify)

	t.Run("conditional beats modal", func(t *testing.T) {
		got := c.Classify("if the password is wrong then the system should ask again", []string{"system"})
		assert.Equal(t, domain.KindConditional, got)
	})

	t.Run("system capability beats user action", func(t *testing.T) {
		got := c.Classify("the member displays great patience", []string{"member", "system"})
		assert.Equal(t, domain.KindSystemCapability, got)
	})

	t.Run("user action beats modal", func(t *testing.T) {
		got := c.Classify("the member must leave", []string{"member", "system"})
		assert.Equal(t, domain.KindUserAction, got)
	})
}

func TestSubstringSemantics(t *testing.T) {
	c := NewClassifier(rules.Default().Classify)

	// Membership tests are substring tests: "if" inside "verify"
	// satisfies the conditional gate when a comma is
	// also present.
	got := c.Classify("verify the totals, per policy", nil)
	assert.Equal(t, domain.KindConditional, got)
}

func TestTotality(t *testing.T) {
	c := NewClassifier(rules.Default().Classify)

	for _, s := range []string{"", "x", "zzz qqq", "42"} {
		kind := c.Classify(s, nil)
		assert.GreaterOrEqual(t, int(kind), int(domain.KindConditional))
		assert.LessOrEqual(t, int(kind), int(domain.KindDefault))
	}
}
