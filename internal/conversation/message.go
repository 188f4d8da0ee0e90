// Package conversation holds the in-memory message log for one chat
// session. The log is append-only, session-scoped, and never persisted.
package conversation

import (
	"encoding/json"
	"time"
)

// Role identifies the author of a message. Exactly two participants.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind determines which structured payload, if any, accompanies the
// message text.
type Kind string

const (
	KindText      Kind = "text"
	KindITRResult Kind = "itr_result"
	KindDeduction Kind = "deduction"
	KindError     Kind = "error"
)

// classifyKind maps a backend message_type to a Kind, falling back to
// text for absent or unknown values.
func classifyKind(messageType string) Kind {
	switch Kind(messageType) {
	case KindITRResult, KindDeduction, KindError:
		return Kind(messageType)
	default:
		return KindText
	}
}

// Message is one turn in the conversation. Timestamps are
// client-assigned for both roles; for assistant messages that is the
// receipt time, not the backend generation time.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Kind      Kind
	Payload   json.RawMessage
}
