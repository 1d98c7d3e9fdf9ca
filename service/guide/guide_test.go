package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseApplicationText(t *testing.T) {
	svc := &Service{}

	text := "I'd like to apply with a price of $1,200. I have 8 years of experience in cultural and food tours and I speak English and German."
	parsed := svc.ParseApplicationText(text)

	assert.Equal(t, 1200.0, parsed.ProposedPrice)
	assert.Equal(t, "8 years of experience", parsed.Experience)
	assert.Equal(t, []string{"English", "German"}, parsed.Languages)
	assert.Contains(t, parsed.Specializations, "cultural")
	assert.Contains(t, parsed.Specializations, "food")
	assert.Equal(t, text, parsed.CoverLetter)
}

func TestParseApplicationTextDefaults(t *testing.T) {
	svc := &Service{}

	parsed := svc.ParseApplicationText("I would love to guide this tour")
	assert.Equal(t, 0.0, parsed.ProposedPrice)
	assert.Empty(t, parsed.Experience)
	assert.Equal(t, []string{"English"}, parsed.Languages)
	assert.Empty(t, parsed.Specializations)
	assert.Equal(t, "I would love to guide this tour", parsed.CoverLetter)
}
