package chatmodel

import (
	"encoding/json"
)

type Stringer interface {
	String() string
}

// ContentProvider is implemented by tool results that carry their own
// display text.
type ContentProvider interface {
	GetContent() string
}

// Stringify converts a tool result to the display form embedded into a
// tool context string.
func Stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(Stringer); ok {
		return s.String()
	}
	if s, ok := v.(ContentProvider); ok {
		return s.GetContent()
	}
	bs, _ := json.Marshal(v)
	return string(bs)
}
