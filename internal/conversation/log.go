package conversation

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
)

// WelcomeMessage seeds every new conversation.
const WelcomeMessage = "नमस्ते! 👋 Hi! I'm your Tax Filing Assistant. I'll help you:\n\n" +
	"• Identify the correct ITR form\n" +
	"• Discover tax deductions you can claim\n" +
	"• Check for errors in your tax data\n" +
	"• Guide you through filing step-by-step\n\n" +
	"Let's start! What type of income do you have? (Salary, Business, Freelance, Rental, or Multiple sources?)"

// UnreachableMessage is the fixed explanation shown when a round trip
// fails. Deliberately non-technical: no status codes, no error strings.
const UnreachableMessage = "Sorry, I'm having trouble reaching the tax service right now. " +
	"Please check that the backend is running and try again."

// welcomeID is a fixed sentinel outside the generated id space.
const welcomeID = "welcome"

// NewConversationID mints an opaque session token. A fresh id is
// minted per chat view; ids are not reused across views.
func NewConversationID() string {
	return "conv_" + uuid.NewString()
}

// Log is the authoritative in-memory message log for one conversation,
// plus the single-request in-flight flag. Appends happen serially from
// the controller's request lifecycle; the mutex only guards against
// readers racing the UI goroutine.
type Log struct {
	mu             sync.Mutex
	conversationID string
	messages       []Message
	seq            int
	inFlight       bool
}

// NewLog creates a log for conversationID seeded with the assistant
// welcome message.
func NewLog(conversationID string) *Log {
	l := &Log{
		conversationID: conversationID,
		messages:       make([]Message, 0, 16),
	}
	l.messages = append(l.messages, Message{
		ID:        welcomeID,
		Role:      RoleAssistant,
		Content:   WelcomeMessage,
		Timestamp: time.Now(),
		Kind:      KindText,
	})
	return l
}

// ConversationID returns the session token scoping this log.
func (l *Log) ConversationID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conversationID
}

// InFlight reports whether a request is currently awaiting its reply.
func (l *Log) InFlight() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// Messages returns a copy of the log in insertion order.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := make([]Message, len(l.messages))
	copy(copied, l.messages)
	return copied
}

// AppendUser appends a user message and opens the in-flight window.
// Rejected (ok=false, no mutation) when text trims to empty or a
// request is already in flight.
func (l *Log) AppendUser(text string) (Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight {
		return Message{}, false
	}

	msg := l.append(RoleUser, text, KindText, nil)
	l.inFlight = true
	return msg, true
}

// AppendAssistant appends the assistant message decoded from a
// transport reply and closes the in-flight window. The kind is
// classified from the reply's declared message type, falling back to
// text when absent or unknown.
func (l *Log) AppendAssistant(reply *api.ChatReply) Message {
	content := reply.Text()
	if content == "" {
		content = "I'm processing your request..."
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	msg := l.append(RoleAssistant, content, classifyKind(reply.MessageType), reply.Data)
	l.inFlight = false
	return msg
}

// AppendSyntheticError appends the fixed unreachable-backend
// explanation as an assistant message and closes the in-flight window.
func (l *Log) AppendSyntheticError() Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := l.append(RoleAssistant, UnreachableMessage, KindError, nil)
	l.inFlight = false
	return msg
}

// AppendNotice appends a locally generated assistant message (command
// output, reset confirmations). Rejected while a request is in flight
// so the user/assistant alternation around round trips is preserved.
func (l *Log) AppendNotice(text string) (Message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight {
		return Message{}, false
	}
	return l.append(RoleAssistant, text, KindText, nil), true
}

// append adds a message with the next sequential id. Caller holds mu.
func (l *Log) append(role Role, content string, kind Kind, payload []byte) Message {
	l.seq++
	msg := Message{
		ID:        fmt.Sprintf("msg_%d", l.seq),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Kind:      kind,
		Payload:   payload,
	}
	l.messages = append(l.messages, msg)
	return msg
}
