package actors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
)

func TestIdentify(t *testing.T) {
	id := NewIdentifier(rules.Default().Actors)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "word level matches",
			in:   "The member clicks the login button. The system validates credentials.",
			want: []string{"member", "system"},
		},
		{
			name: "punctuation stripped from words",
			in:   "The librarian, the member; and the guest!",
			want: []string{"guest", "librarian", "member"},
		},
		{
			name: "admin signal maps to administrator",
			in:   "The admin removes a member.",
			want: []string{"administrator", "member"},
		},
		{
			name: "case insensitive",
			in:   "THE SYSTEM asks the User to log in.",
			want: []string{"system", "user"},
		},
		{
			name: "substring signal inside larger word",
			in:   "all users browse the catalogue",
			want: []string{"user"},
		},
		{
			name: "no actors",
			in:   "the books are on the shelf",
			want: []string{},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, id.Identify(tc.in))
		})
	}
}

func TestIdentifySortedAndWithinVocabulary(t *testing.T) {
	id := NewIdentifier(rules.Default().Actors)
	got := id.Identify("guest system administrator member librarian user admin")

	assert.Equal(t, []string{"administrator", "guest", "librarian", "member", "system", "user"}, got)
}

func TestIdentifyCustomVocabulary(t *testing.T) {
	ar := rules.ActorRules{
		Vocabulary: []string{"customer", "teller"},
		Signals: []rules.ActorSignal{
			{Substring: "teller", Actor: "teller"},
			{Substring: "client", Actor: "customer"},
		},
	}
	id := NewIdentifier(ar)

	assert.Equal(t, []string{"customer", "teller"}, id.Identify("the client meets the Teller"))
	// Default vocabulary no longer applies.
	assert.Equal(t, []string{}, id.Identify("the librarian and the member"))
}
