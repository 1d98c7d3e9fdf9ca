package repository

import (
	"context"

	"github.com/sakyarasadi/tourguideBackend/entity"
)

// ChatSessionRepository manages the volatile conversation window in Redis.
// Keys carry the configured session prefix and expire after the session TTL.
type ChatSessionRepository interface {
	// GetConversationHistory returns the stored messages, oldest first.
	// A missing session yields an empty slice.
	GetConversationHistory(ctx context.Context, sessionID string) ([]entity.ChatMessage, error)
	// AddMessage appends one message and refreshes the session TTL.
	AddMessage(ctx context.Context, sessionID, role, message string) error
	// SetConversationHistory replaces the stored history, used for pruning.
	SetConversationHistory(ctx context.Context, sessionID string, messages []entity.ChatMessage) error
	// GetSummary returns the rolling conversation summary, empty if unset.
	GetSummary(ctx context.Context, sessionID string) (string, error)
	// SetSummary stores the rolling conversation summary.
	SetSummary(ctx context.Context, sessionID, summary string) error
	// ClearSession deletes the history and summary keys.
	ClearSession(ctx context.Context, sessionID string) error
}
