package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"response":        "Salaried income with one house property fits ITR-1.",
			"conversation_id": got.ConversationID,
			"message_type":    "text",
		})
	})

	reply, err := client.SendMessage(context.Background(), "  I'm a salaried employee  ", "conv_abc", "user-7")
	require.NoError(t, err)

	assert.Equal(t, "I'm a salaried employee", got.Message, "text should be trimmed before sending")
	assert.Equal(t, "conv_abc", got.ConversationID)
	assert.Equal(t, "user-7", got.UserID)
	assert.Equal(t, "Salaried income with one house property fits ITR-1.", reply.Text())
	assert.Equal(t, "conv_abc", reply.ConversationID)
}

func TestSendMessageDefaultsToAnonymous(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	})

	_, err := client.SendMessage(context.Background(), "hello", "conv_abc", "")
	require.NoError(t, err)
	assert.Equal(t, AnonymousUser, got.UserID)
}

func TestSendMessageRejectsBadInput(t *testing.T) {
	client := NewClient("http://unused")

	_, err := client.SendMessage(context.Background(), "   ", "conv_abc", "u")
	assert.Error(t, err, "blank text must be rejected before any network call")

	_, err = client.SendMessage(context.Background(), "hello", "", "u")
	assert.Error(t, err, "missing conversation id must be rejected")
}

func TestChatReplyTextFoldsMessageField(t *testing.T) {
	assert.Equal(t, "a", (&ChatReply{Response: "a", Message: "b"}).Text())
	assert.Equal(t, "b", (&ChatReply{Message: "b"}).Text())
	assert.Equal(t, "", (&ChatReply{}).Text())
}

func TestGetHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/chat/history/conv_abc", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"conversation_id": "conv_abc",
			"messages": []map[string]string{
				{"role": "user", "content": "hello"},
				{"role": "assistant", "content": "hi there"},
			},
			"context": map[string]any{"stage": "greeting"},
		})
	})

	history, err := client.GetHistory(context.Background(), "conv_abc")
	require.NoError(t, err)
	assert.Equal(t, "conv_abc", history.ConversationID)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "user", history.Messages[0].Role)
	assert.Equal(t, "hi there", history.Messages[1].Content)
	assert.Equal(t, "greeting", history.Context["stage"])
}

func TestResetConversationIsIdempotent(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/chat/reset/conv_abc", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "success",
			"message": "Conversation reset successfully",
		})
	})

	for i := 0; i < 2; i++ {
		ack, err := client.ResetConversation(context.Background(), "conv_abc")
		require.NoError(t, err)
		assert.Equal(t, "success", ack.Status)
	}
	assert.Equal(t, 2, calls)
}
