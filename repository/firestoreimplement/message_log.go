package firestoreimplement

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/repository"
)

type MessageLogRepository struct {
	db *firestore.Client
}

func NewMessageLogRepository(db *firestore.Client) (repository.MessageLogRepository, error) {
	if db == nil {
		return nil, errors.New("firestore client is nil")
	}
	return &MessageLogRepository{db: db}, nil
}

func (r *MessageLogRepository) LogMessage(ctx context.Context, sessionID, message, role string) (string, error) {
	ref, _, err := messagesCollection(r.db).Add(ctx, map[string]interface{}{
		entity.MessageLogFieldSessionID: sessionID,
		entity.MessageLogFieldRole:      role,
		entity.MessageLogFieldMessage:   message,
		entity.MessageLogFieldTimestamp: firestore.ServerTimestamp,
	})
	if err != nil {
		return "", errors.Wrap(err, "log message")
	}
	return ref.ID, nil
}

func (r *MessageLogRepository) GetAllMessagesForSession(ctx context.Context, sessionID string) ([]entity.MessageLog, error) {
	iter := messagesCollection(r.db).
		Where(entity.MessageLogFieldSessionID, "==", sessionID).
		OrderBy(entity.MessageLogFieldTimestamp, firestore.Asc).
		Documents(ctx)
	return collectMessages(iter)
}

func (r *MessageLogRepository) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]entity.MessageLog, error) {
	iter := messagesCollection(r.db).
		Where(entity.MessageLogFieldSessionID, "==", sessionID).
		OrderBy(entity.MessageLogFieldTimestamp, firestore.Desc).
		Limit(limit).
		Documents(ctx)

	messages, err := collectMessages(iter)
	if err != nil {
		return nil, err
	}

	// chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func collectMessages(iter *firestore.DocumentIterator) ([]entity.MessageLog, error) {
	defer iter.Stop()

	var messages []entity.MessageLog
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate messages")
		}

		var msg entity.MessageLog
		if err := doc.DataTo(&msg); err != nil {
			return nil, errors.Wrap(err, "decode message")
		}
		msg.ID = doc.Ref.ID
		messages = append(messages, msg)
	}
	return messages, nil
}

// ticketCounterID names the per-month counter document, so sequences
// restart each month.
func ticketCounterID(now time.Time) string {
	return fmt.Sprintf("ticketId:%02d-%02d", now.Year()%100, int(now.Month()))
}

// formatTicketID renders TKT{YY}{MM}{SEQ}.
func formatTicketID(now time.Time, seq int64) string {
	return fmt.Sprintf("TKT%02d%02d%02d", now.Year()%100, int(now.Month()), seq)
}

// GenerateTicketID allocates the next ticket id from the current month's
// counter document in a transaction.
func (r *MessageLogRepository) GenerateTicketID(ctx context.Context) (string, error) {
	now := time.Now().UTC()
	counterRef := countersCollection(r.db).Doc(ticketCounterID(now))

	var seq int64
	err := r.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(counterRef)
		if err != nil && !isNotFound(err) {
			return err
		}

		seq = 1
		if err == nil && snap.Exists() {
			current, err := snap.DataAt(entity.CounterFieldSequenceValue)
			if err != nil {
				return err
			}
			if v, ok := current.(int64); ok {
				seq = v + 1
			}
		}

		return tx.Set(counterRef, map[string]interface{}{
			entity.CounterFieldSequenceValue: seq,
			entity.CounterFieldUpdatedAt:     firestore.ServerTimestamp,
		}, firestore.MergeAll)
	})
	if err != nil {
		return "", errors.Wrap(err, "increment ticket counter")
	}

	return formatTicketID(now, seq), nil
}

func (r *MessageLogRepository) CreateSession(ctx context.Context, sessionID string, meta map[string]interface{}) error {
	doc := map[string]interface{}{
		entity.SessionMetaFieldSessionID: sessionID,
		entity.SessionMetaFieldStatus:    "active",
		entity.SessionMetaFieldCreatedAt: firestore.ServerTimestamp,
		entity.SessionMetaFieldUpdatedAt: firestore.ServerTimestamp,
	}
	for k, v := range meta {
		doc[k] = v
	}

	// session id doubles as the document id for direct lookups
	if _, err := sessionsCollection(r.db).Doc(sessionID).Set(ctx, doc); err != nil {
		return errors.Wrap(err, "create session")
	}
	return nil
}

func (r *MessageLogRepository) UpdateSession(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	doc := map[string]interface{}{
		entity.SessionMetaFieldUpdatedAt: firestore.ServerTimestamp,
	}
	for k, v := range updates {
		doc[k] = v
	}

	if _, err := sessionsCollection(r.db).Doc(sessionID).Set(ctx, doc, firestore.MergeAll); err != nil {
		return errors.Wrap(err, "update session")
	}
	return nil
}

func (r *MessageLogRepository) GetSession(ctx context.Context, sessionID string) (*entity.SessionMeta, error) {
	snap, err := sessionsCollection(r.db).Doc(sessionID).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get session")
	}

	var meta entity.SessionMeta
	if err := snap.DataTo(&meta); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	meta.ID = snap.Ref.ID
	return &meta, nil
}

func (r *MessageLogRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := sessionsCollection(r.db).Doc(sessionID).Delete(ctx); err != nil {
		return errors.Wrap(err, "delete session meta")
	}

	iter := messagesCollection(r.db).
		Where(entity.MessageLogFieldSessionID, "==", sessionID).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Wrap(err, "iterate session messages")
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Wrap(err, "delete session message")
		}
	}
	return nil
}
