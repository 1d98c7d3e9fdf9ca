package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/pkg/clients/llm"
	"github.com/sakyarasadi/tourguideBackend/pkg/knowledge"
)

const serviceName = "agent_executor"

// maxIterations bounds the reason-act loop so a model that keeps
// requesting tools cannot spin forever.
const maxIterations = 5

// Executor runs the reason-act loop: the model either answers or
// requests tool calls; tool output is fed back until it answers.
type Executor struct {
	client *llm.ClientChatModel
	tools  []Tool
	byName map[string]Tool
}

var (
	instance *Executor
	once     sync.Once
)

// GetInstance returns the shared executor with the default toolset.
func GetInstance() *Executor {
	once.Do(func() {
		instance = NewExecutor(llm.GetInstance(), []Tool{
			NewKnowledgeRetrieverTool(knowledge.GetInstance()),
		})
	})
	return instance
}

func NewExecutor(client *llm.ClientChatModel, tools []Tool) *Executor {
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name()] = t
	}
	return &Executor{client: client, tools: tools, byName: byName}
}

// Invoke runs the loop on the given conversation and returns the final
// assistant text. Tool failures become tool messages so the model can
// recover instead of the request failing.
func (e *Executor) Invoke(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	defs := toOpenAITools(e.tools)

	for i := 0; i < maxIterations; i++ {
		response, err := e.client.PostChatCompletionsWithTools(ctx, messages, defs)
		if err != nil {
			return "", err
		}
		if len(response.Choices) == 0 {
			return "", fmt.Errorf("chat completion response has no choices")
		}

		choice := response.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			log.Debugf("%s final answer after %d iteration(s)", serviceName, i+1)
			return choice.Content, nil
		}

		messages = append(messages, choice)
		messages = append(messages, e.executeToolCalls(ctx, choice.ToolCalls)...)

		// Ground the follow-up turn when a retrieval tool ran, so the
		// model answers from the retrieved context.
		if called(choice.ToolCalls, ToolNameKnowledgeRetriever) {
			messages = append(messages, openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleUser,
				Content: "Based **only** on the retrieved context above, answer the user's query. " +
					"If the context is insufficient, clearly state what is known and what cannot be " +
					"determined from the available information.",
			})
		}
	}

	return "", fmt.Errorf("tool loop did not converge after %d iterations", maxIterations)
}

func (e *Executor) executeToolCalls(ctx context.Context, calls []openai.ToolCall) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(calls))
	for _, call := range calls {
		var content string

		tool, ok := e.byName[call.Function.Name]
		if !ok {
			content = fmt.Sprintf("Tool %s not found", call.Function.Name)
			log.Warnf("%s unknown tool requested: %s", serviceName, call.Function.Name)
		} else {
			result, err := tool.Execute(ctx, call.Function.Arguments)
			if err != nil {
				content = fmt.Sprintf("Error executing %s: %v", call.Function.Name, err)
				log.Errorf("%s tool %s failed: %v", serviceName, call.Function.Name, err)
			} else {
				content = result
				log.Infof("%s executed tool %s", serviceName, call.Function.Name)
			}
		}

		out = append(out, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    content,
			ToolCallID: call.ID,
		})
	}
	return out
}

func called(calls []openai.ToolCall, name string) bool {
	for _, call := range calls {
		if call.Function.Name == name {
			return true
		}
	}
	return false
}
