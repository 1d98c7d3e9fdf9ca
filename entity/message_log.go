package entity

import "time"

const (
	DefaultCollectionMessages = "messages"
	DefaultCollectionSessions = "sessions"
	DefaultCollectionCounters = "counters"

	MessageLogFieldSessionID = "session_id"
	MessageLogFieldRole      = "role"
	MessageLogFieldMessage   = "message"
	MessageLogFieldTimestamp = "timestamp"

	CounterFieldSequenceValue = "sequence_value"
	CounterFieldUpdatedAt     = "updated_at"

	SessionMetaFieldSessionID = "session_id"
	SessionMetaFieldStatus    = "status"
	SessionMetaFieldTicketID  = "ticket_id"
	SessionMetaFieldCreatedAt = "created_at"
	SessionMetaFieldUpdatedAt = "updated_at"
)

// MessageLog is one chat message persisted permanently in Firestore,
// independent of the volatile Redis session history.
type MessageLog struct {
	ID        string    `firestore:"-" json:"_id"`
	SessionID string    `firestore:"session_id" json:"session_id"`
	Role      string    `firestore:"role" json:"role"`
	Message   string    `firestore:"message" json:"message"`
	Timestamp time.Time `firestore:"timestamp,serverTimestamp" json:"timestamp"`
}

// SessionMeta is the per-session metadata document, keyed by session ID.
type SessionMeta struct {
	ID        string    `firestore:"-" json:"_id"`
	SessionID string    `firestore:"session_id" json:"session_id"`
	Status    string    `firestore:"status" json:"status"`
	TicketID  string    `firestore:"ticket_id,omitempty" json:"ticket_id,omitempty"`
	CreatedAt time.Time `firestore:"created_at,serverTimestamp" json:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at,serverTimestamp" json:"updated_at"`
}
