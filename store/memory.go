package store

import (
	"context"
	"sync"

	"github.com/stokhos-ai/parley/chatmodel"
)

type inMemory struct {
	mu      sync.RWMutex
	storage map[string][]chatmodel.Message
}

// NewMemoryStore creates an in-process message store.
func NewMemoryStore() MessageStore {
	return &inMemory{}
}

func (m *inMemory) Messages(ctx context.Context) []chatmodel.Message {
	chatID := chatmodel.GetChatID(ctx)

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.storage == nil {
		return nil
	}
	msgs := m.storage[chatID]
	if msgs == nil {
		return nil
	}
	cp := make([]chatmodel.Message, len(msgs))
	copy(cp, msgs)
	return cp
}

func (m *inMemory) Append(ctx context.Context, msg chatmodel.Message) error {
	chatID := chatmodel.GetChatID(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string][]chatmodel.Message)
	}
	m.storage[chatID] = append(m.storage[chatID], msg)
	return nil
}

func (m *inMemory) Replace(ctx context.Context, msgs []chatmodel.Message) error {
	chatID := chatmodel.GetChatID(ctx)

	cp := make([]chatmodel.Message, len(msgs))
	copy(cp, msgs)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		m.storage = make(map[string][]chatmodel.Message)
	}
	m.storage[chatID] = cp
	return nil
}

func (m *inMemory) Reset(ctx context.Context) error {
	chatID := chatmodel.GetChatID(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage != nil {
		delete(m.storage, chatID)
	}
	return nil
}
