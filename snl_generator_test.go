// snl_generator_test.go
package snlgenerator

import (
	"context"
	"strings"
	"testing"
)

func TestGenerateWithDefaults(t *testing.T) {
	// Test cases with varying sentence shapes.
	tests := []struct {
		name         string
		input        string
		expectEmpty  bool
		expectActors []string
	}{
		{
			name:         "User and system sentences",
			input:        "The member clicks the login button. The system validates credentials.",
			expectActors: []string{"member", "system"},
		},
		{
			name:         "Conditional sentence",
			input:        "If the entered information is wrong then system asks member to reenter the details.",
			expectActors: []string{"member", "system"},
		},
		{
			name: "Too short input",
			// Filtered by the minimum-length rule.
			input:       "Ok",
			expectEmpty: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := GenerateWithDefaults(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Failed() {
				t.Fatalf("generation failed: %v", result.Error)
			}
			if tc.expectEmpty {
				if len(result.Requirements) != 0 {
					t.Errorf("expected no requirements, got %d", len(result.Requirements))
				}
				return
			}
			if len(result.Requirements) == 0 {
				t.Fatal("expected requirements, got none")
			}
			if len(result.Actors) != len(tc.expectActors) {
				t.Fatalf("expected actors %v, got %v", tc.expectActors, result.Actors)
			}
			for i, actor := range tc.expectActors {
				if result.Actors[i] != actor {
					t.Errorf("expected actors %v, got %v", tc.expectActors, result.Actors)
					break
				}
			}
			for _, req := range result.Requirements {
				ok := strings.HasPrefix(req.Text, "If ") ||
					strings.HasPrefix(req.Text, "When ") ||
					strings.HasPrefix(req.Text, "The system shall")
				if !ok {
					t.Errorf("requirement %q has no canonical prefix", req.Text)
				}
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := "The member clicks the login button. The system validates credentials."
	first := g.Generate(context.Background(), input)
	second := g.Generate(context.Background(), input)

	if first.SNLText != second.SNLText {
		t.Errorf("expected identical output, got %q and %q", first.SNLText, second.SNLText)
	}
}

func TestWithRulesYAML(t *testing.T) {
	rulesYAML := []byte(`
actors:
  vocabulary: [administrator, customer, guest, librarian, member, system, user]
  signals:
    - substring: customer
      actor: customer
    - substring: system
      actor: system
`)

	g, err := New(WithRulesYAML(rulesYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := g.Generate(context.Background(), "The customer clicks the pay button.")
	if result.Failed() {
		t.Fatalf("generation failed: %v", result.Error)
	}
	if len(result.Actors) != 1 || result.Actors[0] != "customer" {
		t.Fatalf("expected actors [customer], got %v", result.Actors)
	}
	if len(result.Requirements) != 1 {
		t.Fatalf("expected one requirement, got %d", len(result.Requirements))
	}
	req := result.Requirements[0]
	if req.Kind != KindUserAction {
		t.Errorf("expected user action, got %v", req.Kind)
	}
	if !strings.Contains(req.Text, "customer") {
		t.Errorf("expected requirement to mention customer, got %q", req.Text)
	}
}

func TestWithFastNormalizerAndParallel(t *testing.T) {
	input := "The member clicks the login button. The system validates credentials. " +
		"If the entered information is wrong then system asks member to reenter the details."

	baseline, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tuned, err := New(WithFastNormalizer(), WithParallel(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := baseline.Generate(context.Background(), input)
	got := tuned.Generate(context.Background(), input)

	if want.SNLText != got.SNLText {
		t.Errorf("expected identical output, got %q and %q", want.SNLText, got.SNLText)
	}
}

func TestWithRulesRejectsInvalid(t *testing.T) {
	rs := DefaultRules()
	rs.Actors.Vocabulary = nil

	if _, err := New(WithRules(rs)); err == nil {
		t.Fatal("expected error for empty vocabulary")
	}
}

func TestGenerateBatch(t *testing.T) {
	g, err := New(WithParallel(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	documents := []string{
		"The member clicks the login button.",
		"The system validates credentials.",
	}
	results := g.GenerateBatch(context.Background(), documents)
	if len(results) != len(documents) {
		t.Fatalf("expected %d results, got %d", len(documents), len(results))
	}
	for i, r := range results {
		if r.Failed() {
			t.Errorf("document %d failed: %v", i, r.Error)
		}
		if len(r.Requirements) == 0 {
			t.Errorf("document %d produced no requirements", i)
		}
	}
}
