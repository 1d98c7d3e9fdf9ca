package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/sakyarasadi/tourguideBackend/config"
)

const clientNameChatModel = "chat_model"

type ClientChatModel struct {
	config *Config
}

var (
	instance *ClientChatModel
	once     sync.Once
)

func GetInstance() *ClientChatModel {
	once.Do(func() {
		cfg := config.GetInstance()
		conf := &Config{
			BaseURL:     cfg.GetString(config.LLMBaseURL),
			Model:       cfg.GetString(config.LLMModel),
			Token:       cfg.GetString(config.GeminiAPIKey),
			Temperature: cast.ToFloat32(cfg.GetFloat64(config.LLMTemperature)),
		}

		instance = &ClientChatModel{
			config: conf,
		}
	})
	return instance
}

func (zc *ClientChatModel) Model() string {
	return zc.config.Model
}

func (zc *ClientChatModel) IsConfigured() bool {
	return zc.config.Token != ""
}

func (zc *ClientChatModel) newClient() *openai.Client {
	defaultReq := openai.DefaultConfig(zc.config.Token)
	defaultReq.BaseURL = zc.config.BaseURL
	return openai.NewClientWithConfig(defaultReq)
}

// @Description non-stream call returning the full completion response
// @Param c context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success *openai.ChatCompletionResponse
// @Success error
func (zc *ClientChatModel) PostChatCompletionsNonStream(c context.Context, messages []openai.ChatCompletionMessage) (*openai.ChatCompletionResponse, error) {
	return zc.postChatCompletions(c, messages, nil)
}

// @Description non-stream call with tool definitions, for agent loops
// @Param c context.Context
// @Param messages []openai.ChatCompletionMessage
// @Param tools []openai.Tool
// @Success *openai.ChatCompletionResponse
// @Success error
func (zc *ClientChatModel) PostChatCompletionsWithTools(c context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (*openai.ChatCompletionResponse, error) {
	return zc.postChatCompletions(c, messages, tools)
}

func (zc *ClientChatModel) postChatCompletions(c context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (*openai.ChatCompletionResponse, error) {
	client := zc.newClient()

	request := openai.ChatCompletionRequest{
		Model:       zc.config.Model,
		Messages:    messages,
		Temperature: zc.config.Temperature,
		Stream:      false,
	}
	if len(tools) > 0 {
		request.Tools = tools
	}

	// dump the full request only at debug level, raw to stdout so the
	// log formatter does not escape newlines
	if log.GetLevel() == log.DebugLevel {
		requestJson, err := json.MarshalIndent(request, "", "  ")
		if err != nil {
			log.Errorf("%s chat completion request json marshal error: %v", clientNameChatModel, err)
			return nil, err
		}
		if _, err := fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion request:\n%s\n", clientNameChatModel, string(requestJson)); err != nil {
			log.Warnf("%s failed to write debug output: %v", clientNameChatModel, err)
		}
	}

	response, err := client.CreateChatCompletion(c, request)
	if err != nil {
		log.Errorf("%s chat completion error: %v", clientNameChatModel, err)
		return nil, err
	}

	if log.GetLevel() == log.DebugLevel {
		responseJson, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			log.Errorf("%s chat completion response json marshal error: %v", clientNameChatModel, err)
		} else {
			if _, err := fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion response:\n%s\n", clientNameChatModel, string(responseJson)); err != nil {
				log.Warnf("%s failed to write debug output: %v", clientNameChatModel, err)
			}
		}
	}

	return &response, nil
}

// @Description non-stream call returning only the message content
// @Param c context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success string
// @Success error
func (zc *ClientChatModel) PostChatCompletionsNonStreamContent(c context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	response, err := zc.PostChatCompletionsNonStream(c, messages)
	if err != nil {
		return "", err
	}

	if response == nil {
		log.Errorf("%s chat completion response is nil", clientNameChatModel)
		return "", fmt.Errorf("chat completion response is nil")
	}

	if len(response.Choices) == 0 {
		log.Errorf("%s chat completion response has no choices", clientNameChatModel)
		return "", fmt.Errorf("chat completion response has no choices")
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		log.Warnf("%s chat completion response content is empty", clientNameChatModel)
	}

	return content, nil
}
