package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/go_snl_generator/internal/core/domain"
	"github.com/baditaflorin/go_snl_generator/internal/core/rules"
)

func req(ordinal int, text string) domain.Requirement {
	return domain.Requirement{Text: text, SourceOrdinal: ordinal, Kind: domain.KindDefault}
}

func TestAssemble(t *testing.T) {
	a := NewAssembler(rules.Default().Assemble)

	candidates := []domain.Candidate{
		{Ordinal: 1, Text: "one"}, {Ordinal: 2, Text: "two"}, {Ordinal: 3, Text: "three"},
	}
	generated := []domain.Requirement{
		req(1, "The system shall be able to validate the credentials."),
		req(2, "The system shall be able to validate the credentials."), // duplicate
		req(3, "If the id is wrong, then the system shall ask again."),
	}

	result := a.Assemble(candidates, generated, []string{"member", "system"})

	assert.Len(t, result.Requirements, 2)
	assert.Equal(t, 1, result.Requirements[0].SourceOrdinal)
	assert.Equal(t, 3, result.Requirements[1].SourceOrdinal)

	assert.Equal(t, 3, result.Stats.InputSentences)
	assert.Equal(t, 3, result.Stats.RawGenerated)
	assert.Equal(t, 2, result.Stats.UniqueGenerated)
	assert.Equal(t, 2, result.Stats.ActorCount)

	assert.Equal(t,
		"The system shall be able to validate the credentials.\nIf the id is wrong, then the system shall ask again.",
		result.SNLText)
	assert.Equal(t,
		"1. The system shall be able to validate the credentials.\n2. If the id is wrong, then the system shall ask again.",
		result.FormattedSNL)
}

func TestAssembleDropsShortAndMalformed(t *testing.T) {
	a := NewAssembler(rules.Default().Assemble)

	generated := []domain.Requirement{
		req(1, "The system shall."),                               // too short
		req(2, "Some other sentence without a canonical prefix."), // bad prefix
		req(3, "When the page loads, the system shall be able to respond appropriately."),
	}

	result := a.Assemble(nil, generated, nil)

	assert.Len(t, result.Requirements, 1)
	assert.Equal(t, 3, result.Requirements[0].SourceOrdinal)
	assert.Equal(t, 3, result.Stats.RawGenerated)
	assert.Equal(t, 1, result.Stats.UniqueGenerated)
	assert.Equal(t, 0, result.Stats.InputSentences)
}

func TestAssembleEmpty(t *testing.T) {
	a := NewAssembler(rules.Default().Assemble)

	result := a.Assemble(nil, nil, []string{})
	assert.Empty(t, result.Requirements)
	assert.Equal(t, "", result.SNLText)
	assert.Equal(t, "", result.FormattedSNL)
	assert.Equal(t, domain.Stats{}, result.Stats)
}
