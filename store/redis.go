package store

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
	"github.com/stokhos-ai/parley/chatmodel"
)

// The redis store implements the MessageStore interface using Redis as the
// backend, so that a conversation survives process restarts. Messages are kept
// in a Redis list per chat ID, under:
//
//	/<prefix>/chatstore/messages/<chatID>
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis backed message store.
func NewRedisStore(client *redis.Client, prefix string) MessageStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

type redisMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (m *redisStore) messagesKey(chatID string) string {
	return path.Join(m.prefix, "chatstore", "messages", chatID)
}

func (m *redisStore) Messages(ctx context.Context) []chatmodel.Message {
	chatID := chatmodel.GetChatID(ctx)

	key := m.messagesKey(chatID)
	data, err := m.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "LRange", "key", key, "err", err.Error())
		return nil
	}

	var messages []chatmodel.Message
	for _, item := range data {
		var rm redisMessage
		if err := json.Unmarshal([]byte(item), &rm); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal message", "err", err.Error())
			continue
		}
		msg, err := toMessage(rm)
		if err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "invalid message", "err", err.Error())
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

func (m *redisStore) Append(ctx context.Context, msg chatmodel.Message) error {
	chatID := chatmodel.GetChatID(ctx)

	data, err := marshalMessage(msg)
	if err != nil {
		return err
	}
	if err := m.client.RPush(ctx, m.messagesKey(chatID), data).Err(); err != nil {
		return errors.Wrap(err, "failed to append message")
	}
	return nil
}

func (m *redisStore) Replace(ctx context.Context, msgs []chatmodel.Message) error {
	chatID := chatmodel.GetChatID(ctx)
	key := m.messagesKey(chatID)

	// marshal everything first, so a bad message cannot leave the
	// history half replaced
	values := make([]any, 0, len(msgs))
	for _, msg := range msgs {
		data, err := marshalMessage(msg)
		if err != nil {
			return err
		}
		values = append(values, data)
	}

	pipe := m.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(values) > 0 {
		pipe.RPush(ctx, key, values...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to replace history")
	}
	return nil
}

func (m *redisStore) Reset(ctx context.Context) error {
	chatID := chatmodel.GetChatID(ctx)
	if err := m.client.Del(ctx, m.messagesKey(chatID)).Err(); err != nil {
		return errors.Wrap(err, "failed to reset history")
	}
	return nil
}

func marshalMessage(msg chatmodel.Message) ([]byte, error) {
	data, err := json.Marshal(redisMessage{
		Role:      msg.Role.String(),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		Metadata:  msg.Metadata,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}
	return data, nil
}

func toMessage(rm redisMessage) (chatmodel.Message, error) {
	role, err := chatmodel.ParseRole(rm.Role)
	if err != nil {
		return chatmodel.Message{}, err
	}
	meta := rm.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return chatmodel.Message{
		Role:      role,
		Content:   rm.Content,
		CreatedAt: rm.CreatedAt,
		Metadata:  meta,
	}, nil
}
