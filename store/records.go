package store

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stokhos-ai/parley/chatmodel"
)

// ErrDecode is returned when persisted history data cannot be decoded.
// Decoding is all-or-nothing: a failure leaves the target history untouched.
var ErrDecode = errors.New("failed to decode history")

// Record is the exchange form of one message:
// a role token, the content, and an RFC 3339 timestamp.
type Record struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// EncodeMessages converts messages to persistable records in history order.
func EncodeMessages(msgs []chatmodel.Message) []Record {
	records := make([]Record, 0, len(msgs))
	for _, msg := range msgs {
		records = append(records, Record{
			Role:      msg.Role.String(),
			Content:   msg.Content,
			Timestamp: msg.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	return records
}

// DecodeRecords reconstructs messages from records. The role is validated
// against the closed enumeration and the timestamp parsed from its
// serialized form; any failure rejects the whole batch.
func DecodeRecords(records []Record) ([]chatmodel.Message, error) {
	msgs := make([]chatmodel.Message, 0, len(records))
	for i, rec := range records {
		role, err := chatmodel.ParseRole(rec.Role)
		if err != nil {
			return nil, errors.WithMessagef(ErrDecode, "record %d: %s", i, err.Error())
		}
		ts, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
		if err != nil {
			return nil, errors.WithMessagef(ErrDecode, "record %d: invalid timestamp %q", i, rec.Timestamp)
		}
		msgs = append(msgs, chatmodel.Message{
			Role:      role,
			Content:   rec.Content,
			CreatedAt: ts,
			Metadata:  map[string]any{},
		})
	}
	return msgs, nil
}

// MarshalRecords renders records as indented UTF-8 JSON,
// preserving non-ASCII content.
func MarshalRecords(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, errors.Wrap(err, "failed to marshal records")
	}
	return buf.Bytes(), nil
}

// UnmarshalRecords parses the JSON form produced by MarshalRecords.
func UnmarshalRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WithMessagef(ErrDecode, "%s", err.Error())
	}
	return records, nil
}

// SaveFile writes the records to a JSON file.
func SaveFile(path string, records []Record) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write history file")
	}
	return nil
}

// LoadFile reads records from a JSON file.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read history file")
	}
	return UnmarshalRecords(data)
}
