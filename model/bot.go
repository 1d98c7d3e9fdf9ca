package model

import "github.com/sakyarasadi/tourguideBackend/entity"

// BotRequest is the POST /api/bot body.
type BotRequest struct {
	InputMsg string `json:"input_msg"`
}

// ReactSections holds the parsed reasoning trace of an agent answer.
// Absent sections stay nil so the JSON mirrors what the model produced.
type ReactSections struct {
	Thought     *string `json:"thought"`
	Action      *string `json:"action"`
	Observation *string `json:"observation"`
	FinalAnswer *string `json:"final_answer"`
}

// BotResult is the payload returned for a processed message.
type BotResult struct {
	Response        string         `json:"response"`
	MessageType     string         `json:"message_type"`
	Confidence      float64        `json:"confidence"`
	OriginalMessage string         `json:"original_message"`
	SessionID       string         `json:"session_id"`
	UserRole        string         `json:"user_role"`
	Suggestions     []string       `json:"suggestions"`
	Reasoning       *ReactSections `json:"reasoning,omitempty"`
	Error           string         `json:"error,omitempty"`
}

// ServiceInfo describes the running bot.
type ServiceInfo struct {
	ServiceName string `json:"service_name"`
	Version     string `json:"version"`
	Status      string `json:"status"`
	LLMModel    string `json:"llm_model"`
}

// BotInfo is the GET /api/bot payload. History comes from the permanent
// Firestore log, not the Redis window.
type BotInfo struct {
	ServiceInfo    ServiceInfo         `json:"service_info"`
	SessionHistory []entity.MessageLog `json:"session_history"`
}

// SessionHistory is the GET /api/bot/history payload. History holds
// ChatMessage entries for source=redis and MessageLog entries otherwise.
type SessionHistory struct {
	SessionID    string      `json:"session_id"`
	Source       string      `json:"source"`
	MessageCount int         `json:"message_count"`
	History      interface{} `json:"history"`
}
