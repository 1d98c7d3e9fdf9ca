package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/config"
	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/pkg/clients/llm"
	"github.com/sakyarasadi/tourguideBackend/pkg/tools"
	"github.com/sakyarasadi/tourguideBackend/repository/factory"
	"github.com/sakyarasadi/tourguideBackend/service/agent"
)

const serviceName = "bot_service"

// credentialPatterns mask password-like substrings before anything is
// logged or persisted. Group 1 keeps the label, the secret becomes ******.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password\s*[:=]\s*)(\S+)`),
	regexp.MustCompile(`(?i)(pwd\s*[:=]\s*)(\S+)`),
	regexp.MustCompile(`(?i)(pass\s*[:=]\s*)(\S+)`),
	regexp.MustCompile(`(?i)(\bp:\s*)(\S+)`),
	regexp.MustCompile(`(?i)(\bpassword\b\s+is\s+)(\S+)`),
	regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)(\S+)`),
	regexp.MustCompile(`(?i)(token\s*[:=]\s*)(\S+)`),
}

var reactSectionHeader = regexp.MustCompile(`(?i)\*{0,2}(Thought|Action|Observation|Final Answer)\*{0,2}\s*:\s*`)

var leadingAnswerLabel = regexp.MustCompile(`(?i)^\s*\**\s*answer\s*:\s*`)

var (
	serviceOnce sync.Once
	instance    *Service
)

type logItem struct {
	sessionID string
	role      string
	message   string
}

type Service struct {
	repositoryFactory factory.Factory
	agentExecutor     *agent.Executor
	llmClient         *llm.ClientChatModel
	logBatcher        *tools.BatchProcessor
}

func NewService(repositoryFactory factory.Factory) *Service {
	serviceOnce.Do(func() {
		instance = &Service{
			repositoryFactory: repositoryFactory,
			agentExecutor:     agent.GetInstance(),
			llmClient:         llm.GetInstance(),
		}
		instance.logBatcher = tools.NewBatchProcessor("message_log", tools.GetDefaultBatchConfig(), instance.flushMessageLogs)
		instance.logBatcher.Start()
	})
	return instance
}

// Close stops the background log writer, flushing pending entries.
func (s *Service) Close() {
	if s.logBatcher != nil {
		s.logBatcher.Stop()
	}
}

// RedactCredentials masks secrets so they never reach logs or storage.
func RedactCredentials(text string) string {
	redacted := text
	for _, pattern := range credentialPatterns {
		redacted = pattern.ReplaceAllString(redacted, "${1}******")
	}
	return redacted
}

func (s *Service) GetServiceInfo() model.ServiceInfo {
	cfg := config.GetInstance()
	return model.ServiceInfo{
		ServiceName: cfg.GetStringOrDefault(config.BotName, "AI Bot"),
		Version:     cfg.GetStringOrDefault(config.BotVersion, "1.0.0"),
		Status:      "running",
		LLMModel:    cfg.GetStringOrDefault(config.LLMModel, "gemini-2.5-flash"),
	}
}

// GetSessionHistory returns the Redis conversation window. An unavailable
// session store yields an empty history, not an error.
func (s *Service) GetSessionHistory(ctx context.Context, sessionID string) []entity.ChatMessage {
	repo, err := s.repositoryFactory.NewChatSessionRepository()
	if err != nil {
		log.Warnf("%s session store unavailable: %v", serviceName, err)
		return []entity.ChatMessage{}
	}

	history, err := repo.GetConversationHistory(ctx, sessionID)
	if err != nil {
		log.Errorf("%s get session history: %v", serviceName, err)
		return []entity.ChatMessage{}
	}
	return history
}

// GetSessionHistoryFromFirestore returns the permanent message log.
func (s *Service) GetSessionHistoryFromFirestore(ctx context.Context, sessionID string) []entity.MessageLog {
	repo, err := s.repositoryFactory.NewMessageLogRepository()
	if err != nil {
		log.Warnf("%s message log store unavailable: %v", serviceName, err)
		return []entity.MessageLog{}
	}

	history, err := repo.GetAllMessagesForSession(ctx, sessionID)
	if err != nil {
		log.Errorf("%s get firestore history: %v", serviceName, err)
		return []entity.MessageLog{}
	}
	return history
}

// GetRecentSessionHistoryFromFirestore returns the last context window of
// the permanent message log.
func (s *Service) GetRecentSessionHistoryFromFirestore(ctx context.Context, sessionID string) []entity.MessageLog {
	repo, err := s.repositoryFactory.NewMessageLogRepository()
	if err != nil {
		log.Warnf("%s message log store unavailable: %v", serviceName, err)
		return []entity.MessageLog{}
	}

	history, err := repo.GetRecentMessages(ctx, sessionID, keepK())
	if err != nil {
		log.Errorf("%s get recent firestore history: %v", serviceName, err)
		return []entity.MessageLog{}
	}
	return history
}

// ClearSession drops the Redis window and summary for a session, and
// removes its Firestore session document and logged messages.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	repo, err := s.repositoryFactory.NewChatSessionRepository()
	if err != nil {
		return model.NewError(model.ErrorStoreUnavailable, err)
	}
	if err := repo.ClearSession(ctx, sessionID); err != nil {
		return model.NewError(model.ErrorSessionStore, err)
	}

	// a degraded Firestore never blocks clearing the live session
	if logRepo, err := s.repositoryFactory.NewMessageLogRepository(); err == nil {
		if err := logRepo.DeleteSession(ctx, sessionID); err != nil {
			log.Warnf("%s delete firestore session %s: %v", serviceName, sessionID, err)
		}
	}
	return nil
}

func keepK() int {
	k := config.GetInstance().GetIntOrDefault(config.MaxConversationHistoryMessages, 10)
	if k <= 0 {
		k = 10
	}
	return k
}

// buildLLMMessages assembles the agent conversation: role prompt, session
// marker, stored summary, the windowed history, then the new message.
func (s *Service) buildLLMMessages(ctx context.Context, history []entity.ChatMessage, sessionID, inputMsg, userRole string) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: GetSystemPrompt(userRole)},
	}

	if sessionID != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Current session identifier: %s", sessionID),
		})

		if repo, err := s.repositoryFactory.NewChatSessionRepository(); err == nil {
			if summary, err := repo.GetSummary(ctx, sessionID); err == nil && summary != "" {
				messages = append(messages, openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleUser,
					Content: "Context summary: " + summary,
				})
			}
		}
	}

	window := history
	if k := keepK(); len(window) > k {
		window = window[len(window)-k:]
	}
	for _, msg := range window {
		switch msg.Role {
		case constant.RoleUser:
			messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: msg.Message})
		case constant.RoleAssistant:
			messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: msg.Message})
		}
	}

	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: inputMsg})
}

// ExtractReactSections parses the four ReAct labels from an agent answer.
// When none are present the whole text becomes the final answer.
func ExtractReactSections(text string) model.ReactSections {
	sections := model.ReactSections{}
	if strings.TrimSpace(text) == "" {
		return sections
	}

	locs := reactSectionHeader.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		label := strings.ToLower(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(text[loc[1]:end])

		switch label {
		case "thought":
			sections.Thought = &content
		case "action":
			sections.Action = &content
		case "observation":
			sections.Observation = &content
		case "final answer":
			sections.FinalAnswer = &content
		}
	}

	if sections.Thought == nil && sections.Action == nil && sections.Observation == nil && sections.FinalAnswer == nil {
		cleaned := leadingAnswerLabel.ReplaceAllString(strings.TrimSpace(text), "")
		sections.FinalAnswer = &cleaned
	}
	return sections
}

// ProcessMessage runs the full pipeline: window the history, run the
// agent, parse the answer, persist redacted messages to both stores, and
// prune long sessions.
func (s *Service) ProcessMessage(ctx context.Context, inputMsg, sessionID, userRole string) *model.BotResult {
	log.Infof("%s processing message for session %s role %s", serviceName, sessionID, userRole)

	var history []entity.ChatMessage
	if sessionID != "" {
		history = s.GetSessionHistory(ctx, sessionID)
		log.Debugf("%s retrieved %d messages from session history", serviceName, len(history))
	}

	messages := s.buildLLMMessages(ctx, history, sessionID, inputMsg, userRole)

	aiResponse, err := s.agentExecutor.Invoke(ctx, messages)
	if err != nil {
		log.Errorf("%s agent invocation failed: %v", serviceName, err)
		return &model.BotResult{
			Response:        "I apologize, but I encountered an error processing your message. Please try again.",
			MessageType:     "error",
			Confidence:      0,
			OriginalMessage: inputMsg,
			SessionID:       sessionID,
			UserRole:        userRole,
			Suggestions:     []string{},
			Error:           err.Error(),
		}
	}
	if strings.TrimSpace(aiResponse) == "" {
		aiResponse = "I apologize, but I couldn't generate a response at this time."
	}

	sections := ExtractReactSections(aiResponse)
	finalAnswer := aiResponse
	if sections.FinalAnswer != nil && *sections.FinalAnswer != "" {
		finalAnswer = *sections.FinalAnswer
	}

	if sessionID != "" {
		s.persistConversation(ctx, sessionID, inputMsg, finalAnswer)
		s.ensureSessionMeta(ctx, sessionID)
		s.maybeSummarizeAndPrune(ctx, sessionID)
	}

	return &model.BotResult{
		Response:        finalAnswer,
		MessageType:     "ai_response",
		Confidence:      0.85,
		OriginalMessage: inputMsg,
		SessionID:       sessionID,
		UserRole:        userRole,
		Suggestions:     []string{},
		Reasoning:       &sections,
	}
}

func (s *Service) persistConversation(ctx context.Context, sessionID, inputMsg, finalAnswer string) {
	redactedInput := RedactCredentials(inputMsg)
	redactedAnswer := RedactCredentials(finalAnswer)

	if repo, err := s.repositoryFactory.NewChatSessionRepository(); err == nil {
		if err := repo.AddMessage(ctx, sessionID, constant.RoleUser, redactedInput); err != nil {
			log.Errorf("%s save user message to redis: %v", serviceName, err)
		}
		if err := repo.AddMessage(ctx, sessionID, constant.RoleAssistant, redactedAnswer); err != nil {
			log.Errorf("%s save assistant message to redis: %v", serviceName, err)
		}
	}

	// permanent log goes through the batcher so chat latency does not
	// pay for Firestore round trips
	s.logBatcher.Submit(logItem{sessionID: sessionID, role: constant.RoleUser, message: redactedInput})
	s.logBatcher.Submit(logItem{sessionID: sessionID, role: constant.RoleBot, message: redactedAnswer})
}

// ensureSessionMeta keeps the Firestore session document in step with the
// conversation: the first message creates it with a freshly allocated
// ticket id, later messages touch its updated timestamp.
func (s *Service) ensureSessionMeta(ctx context.Context, sessionID string) {
	repo, err := s.repositoryFactory.NewMessageLogRepository()
	if err != nil {
		return
	}

	meta, err := repo.GetSession(ctx, sessionID)
	if err != nil {
		log.Warnf("%s get session meta for %s: %v", serviceName, sessionID, err)
		return
	}
	if meta != nil {
		if err := repo.UpdateSession(ctx, sessionID, nil); err != nil {
			log.Warnf("%s touch session meta for %s: %v", serviceName, sessionID, err)
		}
		return
	}

	ticketID, err := repo.GenerateTicketID(ctx)
	if err != nil {
		log.Warnf("%s generate ticket id for %s: %v", serviceName, sessionID, err)
	}
	if err := repo.CreateSession(ctx, sessionID, map[string]interface{}{
		entity.SessionMetaFieldTicketID: ticketID,
	}); err != nil {
		log.Warnf("%s create session meta for %s: %v", serviceName, sessionID, err)
	}
}

func (s *Service) flushMessageLogs(batch []interface{}) error {
	repo, err := s.repositoryFactory.NewMessageLogRepository()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, raw := range batch {
		item, ok := raw.(logItem)
		if !ok {
			continue
		}
		if _, err := repo.LogMessage(ctx, item.sessionID, item.message, item.role); err != nil {
			log.Errorf("%s flush message log for session %s: %v", serviceName, item.sessionID, err)
		}
	}
	return nil
}

// maybeSummarizeAndPrune compresses sessions that grew well past the
// context window: the full history becomes a stored summary and only the
// last K messages stay in Redis.
func (s *Service) maybeSummarizeAndPrune(ctx context.Context, sessionID string) {
	repo, err := s.repositoryFactory.NewChatSessionRepository()
	if err != nil {
		return
	}

	history, err := repo.GetConversationHistory(ctx, sessionID)
	if err != nil {
		return
	}

	k := keepK()
	if len(history) <= k*2 {
		return
	}

	var convo strings.Builder
	for _, h := range history {
		convo.WriteString(h.Role)
		convo.WriteString(": ")
		convo.WriteString(h.Message)
		convo.WriteString("\n")
	}

	summaryPrompt := "Summarize the following conversation between a user and an assistant. " +
		"Capture key points, decisions, and any unresolved items. " +
		"Keep the summary concise (under 150 words).\n\n" + convo.String()

	summary, err := s.llmClient.PostChatCompletionsNonStreamContent(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: summaryPrompt},
	})
	if err != nil {
		log.Warnf("%s summarization skipped: %v", serviceName, err)
		return
	}
	if summary != "" {
		if err := repo.SetSummary(ctx, sessionID, summary); err != nil {
			log.Warnf("%s store summary: %v", serviceName, err)
		}
	}

	if err := repo.SetConversationHistory(ctx, sessionID, history[len(history)-k:]); err != nil {
		log.Warnf("%s prune history: %v", serviceName, err)
		return
	}
	log.Infof("%s summarized and pruned session %s", serviceName, sessionID)
}
