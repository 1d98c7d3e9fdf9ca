package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactCredentials(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		plain bool
	}{
		{name: "password colon", in: "my password: hunter2", want: "my password: ******"},
		{name: "password equals", in: "password=secret123", want: "password=******"},
		{name: "pwd", in: "pwd: abc", want: "pwd: ******"},
		{name: "password is", in: "the password is swordfish", want: "the password is ******"},
		{name: "api key", in: "api_key: sk-12345", want: "api_key: ******"},
		{name: "api-key dash", in: "API-KEY=sk-12345", want: "API-KEY=******"},
		{name: "token", in: "token: eyJhbGciOi", want: "token: ******"},
		{name: "no secret", in: "I want a tour of Kandy", want: "I want a tour of Kandy", plain: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RedactCredentials(tc.in)
			assert.Equal(t, tc.want, got)
			if tc.plain {
				assert.Equal(t, tc.in, got)
			}
		})
	}
}

func TestExtractReactSectionsFull(t *testing.T) {
	text := "Thought: the user asks about Kandy.\n" +
		"Action: search_knowledge_base\n" +
		"Observation: Kandy hosts the Temple of the Tooth.\n" +
		"Final Answer: Kandy is famous for the Temple of the Tooth."

	sections := ExtractReactSections(text)
	require.NotNil(t, sections.Thought)
	require.NotNil(t, sections.Action)
	require.NotNil(t, sections.Observation)
	require.NotNil(t, sections.FinalAnswer)

	assert.Equal(t, "the user asks about Kandy.", *sections.Thought)
	assert.Equal(t, "search_knowledge_base", *sections.Action)
	assert.Equal(t, "Kandy hosts the Temple of the Tooth.", *sections.Observation)
	assert.Equal(t, "Kandy is famous for the Temple of the Tooth.", *sections.FinalAnswer)
}

func TestExtractReactSectionsMarkdownHeaders(t *testing.T) {
	text := "**Thought**: needs a lookup\n**Final Answer**: here you go"

	sections := ExtractReactSections(text)
	require.NotNil(t, sections.Thought)
	require.NotNil(t, sections.FinalAnswer)
	assert.Equal(t, "needs a lookup", *sections.Thought)
	assert.Equal(t, "here you go", *sections.FinalAnswer)
	assert.Nil(t, sections.Action)
	assert.Nil(t, sections.Observation)
}

func TestExtractReactSectionsPlainText(t *testing.T) {
	sections := ExtractReactSections("Kandy is a city in central Sri Lanka.")
	require.NotNil(t, sections.FinalAnswer)
	assert.Equal(t, "Kandy is a city in central Sri Lanka.", *sections.FinalAnswer)
	assert.Nil(t, sections.Thought)
}

func TestExtractReactSectionsLeadingAnswerLabel(t *testing.T) {
	sections := ExtractReactSections("Answer: the tour starts at 9am.")
	require.NotNil(t, sections.FinalAnswer)
	assert.Equal(t, "the tour starts at 9am.", *sections.FinalAnswer)
}

func TestExtractReactSectionsEmpty(t *testing.T) {
	sections := ExtractReactSections("   ")
	assert.Nil(t, sections.FinalAnswer)
	assert.Nil(t, sections.Thought)
	assert.Nil(t, sections.Action)
	assert.Nil(t, sections.Observation)
}
