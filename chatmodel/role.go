package chatmodel

import (
	"github.com/cockroachdb/errors"
)

// ErrUnknownRole is returned when a role token is not one of the four
// conversation roles.
var ErrUnknownRole = errors.New("unknown role")

// Role is the author of a conversation message.
// The enumeration is closed; it is never extended at runtime.
type Role string

const (
	// RoleSystem is a message that defines the agent behavior.
	RoleSystem Role = "system"
	// RoleUser is a message sent by the user.
	RoleUser Role = "user"
	// RoleAssistant is a message produced by the agent.
	RoleAssistant Role = "assistant"
	// RoleTool is a message produced by a tool.
	RoleTool Role = "tool"
)

// ParseRole validates a role token against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return r, nil
	}
	return "", errors.WithMessagef(ErrUnknownRole, "role %q", s)
}

func (r Role) String() string {
	return string(r)
}
