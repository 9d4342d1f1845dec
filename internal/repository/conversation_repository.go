package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConversationMessage is one turn of an AI chat session.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationRepository keeps AI chat histories in Redis, one key per
// session, expiring after the configured TTL. Each read or write refreshes
// the expiry so active sessions stay alive.
type ConversationRepository struct {
	Redis *redis.Client
	TTL   time.Duration
	ctx   context.Context
}

func NewConversationRepository(rdb *redis.Client, ttl time.Duration) *ConversationRepository {
	return &ConversationRepository{
		Redis: rdb,
		TTL:   ttl,
		ctx:   context.Background(),
	}
}

func conversationKey(sessionID string) string {
	return "chat:session:" + sessionID
}

// Get returns the stored history for a session, or nil when the session is
// unknown or expired.
func (r *ConversationRepository) Get(sessionID string) ([]ConversationMessage, error) {
	data, err := r.Redis.Get(r.ctx, conversationKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var history []ConversationMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	r.Redis.Expire(r.ctx, conversationKey(sessionID), r.TTL)
	return history, nil
}

// Save overwrites the session history and resets its expiry.
func (r *ConversationRepository) Save(sessionID string, history []ConversationMessage) error {
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return r.Redis.Set(r.ctx, conversationKey(sessionID), data, r.TTL).Err()
}

// Delete removes a session's history.
func (r *ConversationRepository) Delete(sessionID string) error {
	return r.Redis.Del(r.ctx, conversationKey(sessionID)).Err()
}
