package agent

import (
	"context"
	"encoding/json"

	"github.com/sashabaranov/go-openai"
)

// Tool is one callable capability exposed to the model. ArgumentsJson
// returns the JSON schema of the parameters object.
type Tool interface {
	Name() string
	Description() string
	ArgumentsJson() string
	Execute(ctx context.Context, argsJson string) (string, error)
}

// toOpenAITools renders tool definitions for the chat completion request.
func toOpenAITools(tools []Tool) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  json.RawMessage(t.ArgumentsJson()),
			},
		})
	}
	return out
}
