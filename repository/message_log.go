package repository

import (
	"context"

	"github.com/sakyarasadi/tourguideBackend/entity"
)

// MessageLogRepository persists chat messages and session metadata in
// Firestore, independent of the Redis session cache.
type MessageLogRepository interface {
	// LogMessage stores one message and returns the document ID.
	LogMessage(ctx context.Context, sessionID, message, role string) (string, error)
	// GetAllMessagesForSession returns every logged message, oldest first.
	GetAllMessagesForSession(ctx context.Context, sessionID string) ([]entity.MessageLog, error)
	// GetRecentMessages returns the last limit messages in chronological order.
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]entity.MessageLog, error)
	// GenerateTicketID atomically allocates the next TKT{YY}{MM}{SEQ} id
	// from the monthly counter document.
	GenerateTicketID(ctx context.Context) (string, error)
	// CreateSession writes the session metadata document.
	CreateSession(ctx context.Context, sessionID string, meta map[string]interface{}) error
	// UpdateSession merges updates into the session metadata document.
	UpdateSession(ctx context.Context, sessionID string, updates map[string]interface{}) error
	// GetSession returns the session metadata, nil if absent.
	GetSession(ctx context.Context, sessionID string) (*entity.SessionMeta, error)
	// DeleteSession removes the metadata document and all logged messages.
	DeleteSession(ctx context.Context, sessionID string) error
}
