// Package store holds conversation histories. Histories are ordered,
// append-only sequences of messages; reads return snapshots so callers
// cannot mutate a history behind its owner's back.
package store

import (
	"context"

	"github.com/effective-security/xlog"
	"github.com/stokhos-ai/parley/chatmodel"
)

var logger = xlog.NewPackageLogger("github.com/stokhos-ai/parley", "store")

// MessageStore keeps the message history of a chat. The chat is identified
// by the chatmodel.ChatContext on the provided context.
type MessageStore interface {
	// Messages returns a snapshot copy of the history in insertion order.
	Messages(ctx context.Context) []chatmodel.Message
	// Append adds a message at the end of the history.
	Append(ctx context.Context, msg chatmodel.Message) error
	// Replace swaps the entire history atomically.
	Replace(ctx context.Context, msgs []chatmodel.Message) error
	// Reset removes the history.
	Reset(ctx context.Context) error
}
