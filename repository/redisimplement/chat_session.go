package redisimplement

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/sakyarasadi/tourguideBackend/config"
	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/pkg/timeutil"
	"github.com/sakyarasadi/tourguideBackend/repository"
)

type ChatSessionRepository struct {
	client *goredis.Client
}

func NewChatSessionRepository(client *goredis.Client) (repository.ChatSessionRepository, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	return &ChatSessionRepository{client: client}, nil
}

func sessionKey(sessionID string) string {
	return config.GetInstance().GetString(config.RedisSessionPrefix) + sessionID
}

func summaryKey(sessionID string) string {
	return sessionKey(sessionID) + ":summary"
}

func sessionTTL() time.Duration {
	return time.Duration(config.GetInstance().GetInt(config.SessionTTLSeconds)) * time.Second
}

func (r *ChatSessionRepository) GetConversationHistory(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == goredis.Nil {
		return []entity.ChatMessage{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get conversation history")
	}

	var history []entity.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, errors.Wrap(err, "decode conversation history")
	}
	return history, nil
}

func (r *ChatSessionRepository) AddMessage(ctx context.Context, sessionID, role, message string) error {
	history, err := r.GetConversationHistory(ctx, sessionID)
	if err != nil {
		return err
	}

	history = append(history, entity.ChatMessage{
		Role:      role,
		Message:   message,
		Timestamp: timeutil.NowISO(),
	})

	return r.SetConversationHistory(ctx, sessionID, history)
}

func (r *ChatSessionRepository) SetConversationHistory(ctx context.Context, sessionID string, messages []entity.ChatMessage) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return errors.Wrap(err, "encode conversation history")
	}
	if err := r.client.Set(ctx, sessionKey(sessionID), raw, sessionTTL()).Err(); err != nil {
		return errors.Wrap(err, "set conversation history")
	}
	return nil
}

func (r *ChatSessionRepository) GetSummary(ctx context.Context, sessionID string) (string, error) {
	summary, err := r.client.Get(ctx, summaryKey(sessionID)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "get session summary")
	}
	return summary, nil
}

func (r *ChatSessionRepository) SetSummary(ctx context.Context, sessionID, summary string) error {
	if err := r.client.Set(ctx, summaryKey(sessionID), summary, sessionTTL()).Err(); err != nil {
		return errors.Wrap(err, "set session summary")
	}
	return nil
}

func (r *ChatSessionRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID), summaryKey(sessionID)).Err(); err != nil {
		return errors.Wrap(err, "clear session")
	}
	return nil
}
