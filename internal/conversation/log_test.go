package conversation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
)

func TestNewLogSeedsWelcome(t *testing.T) {
	l := NewLog(NewConversationID())

	msgs := l.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, RoleAssistant, msgs[0].Role)
	require.Equal(t, KindText, msgs[0].Kind)
	require.Equal(t, "welcome", msgs[0].ID)
	require.Contains(t, msgs[0].Content, "Tax Filing Assistant")
	require.False(t, l.InFlight())
}

func TestNewConversationIDIsUnique(t *testing.T) {
	a := NewConversationID()
	b := NewConversationID()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if !strings.HasPrefix(a, "conv_") {
		t.Errorf("expected conv_ prefix, got %s", a)
	}
}

func TestAppendUserRejectsEmptyInput(t *testing.T) {
	l := NewLog(NewConversationID())

	for _, text := range []string{"", "   ", "\n\t "} {
		if _, ok := l.AppendUser(text); ok {
			t.Errorf("expected %q to be rejected", text)
		}
	}
	if l.Len() != 1 {
		t.Errorf("log length changed on rejected appends: %d", l.Len())
	}
	if l.InFlight() {
		t.Error("rejected append must not open the in-flight window")
	}
}

func TestAppendUserOpensInFlightWindow(t *testing.T) {
	l := NewLog(NewConversationID())

	msg, ok := l.AppendUser("  I'm a salaried employee  ")
	require.True(t, ok)
	require.Equal(t, RoleUser, msg.Role)
	require.Equal(t, "I'm a salaried employee", msg.Content)
	require.True(t, l.InFlight())
}

func TestAppendUserRejectedWhileInFlight(t *testing.T) {
	l := NewLog(NewConversationID())

	_, ok := l.AppendUser("first")
	require.True(t, ok)

	before := l.Len()
	for i := 0; i < 5; i++ {
		if _, ok := l.AppendUser("second"); ok {
			t.Fatal("submit accepted while a request is in flight")
		}
	}
	require.Equal(t, before, l.Len(), "rejected submits must not grow the log")
}

func TestAppendAssistantClosesWindow(t *testing.T) {
	l := NewLog(NewConversationID())
	l.AppendUser("I'm a salaried employee")

	msg := l.AppendAssistant(&api.ChatReply{Response: "Great! Salaried income usually means ITR-1."})

	require.Equal(t, RoleAssistant, msg.Role)
	require.Equal(t, KindText, msg.Kind)
	require.False(t, l.InFlight())

	// Exactly one assistant message follows the user message.
	msgs := l.Messages()
	require.Equal(t, RoleUser, msgs[len(msgs)-2].Role)
	require.Equal(t, RoleAssistant, msgs[len(msgs)-1].Role)

	// And the next submit is accepted again.
	_, ok := l.AppendUser("What about deductions?")
	require.True(t, ok)
}

func TestAppendAssistantKindClassification(t *testing.T) {
	tests := []struct {
		messageType string
		want        Kind
	}{
		{"", KindText},
		{"text", KindText},
		{"itr_result", KindITRResult},
		{"deduction", KindDeduction},
		{"error", KindError},
		{"something_new", KindText},
	}

	for _, tt := range tests {
		l := NewLog(NewConversationID())
		l.AppendUser("hello")
		msg := l.AppendAssistant(&api.ChatReply{Response: "ok", MessageType: tt.messageType})
		if msg.Kind != tt.want {
			t.Errorf("message_type %q: got kind %q, want %q", tt.messageType, msg.Kind, tt.want)
		}
	}
}

func TestAppendAssistantFallsBackToMessageField(t *testing.T) {
	l := NewLog(NewConversationID())
	l.AppendUser("hello")

	msg := l.AppendAssistant(&api.ChatReply{Message: "from the message field"})
	require.Equal(t, "from the message field", msg.Content)
}

func TestAppendSyntheticError(t *testing.T) {
	l := NewLog(NewConversationID())
	l.AppendUser("Check my deductions")

	msg := l.AppendSyntheticError()

	require.Equal(t, RoleAssistant, msg.Role)
	require.Equal(t, KindError, msg.Kind)
	require.Equal(t, UnreachableMessage, msg.Content)
	require.False(t, l.InFlight())
}

func TestAppendNoticeRejectedWhileInFlight(t *testing.T) {
	l := NewLog(NewConversationID())
	l.AppendUser("hello")

	if _, ok := l.AppendNotice("help text"); ok {
		t.Fatal("notice accepted during the in-flight window")
	}

	l.AppendAssistant(&api.ChatReply{Response: "hi"})
	_, ok := l.AppendNotice("help text")
	require.True(t, ok)
}

func TestMessageIDsAreMonotonic(t *testing.T) {
	l := NewLog(NewConversationID())

	var ids []string
	for i := 0; i < 3; i++ {
		msg, ok := l.AppendUser("turn")
		require.True(t, ok)
		ids = append(ids, msg.ID)
		reply := l.AppendAssistant(&api.ChatReply{Response: "ok"})
		ids = append(ids, reply.ID)
	}

	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate message id %s", id)
		}
		seen[id] = true
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	l := NewLog(NewConversationID())
	l.AppendUser("hello")

	msgs := l.Messages()
	msgs[0].Content = "mutated"

	if l.Messages()[0].Content == "mutated" {
		t.Fatal("Messages must return a copy, not the backing slice")
	}
}
