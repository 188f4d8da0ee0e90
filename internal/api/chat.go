package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// chatRequest is the POST /api/chat/ body.
type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
}

// ChatReply is one assistant turn. The backend answers with either
// "response" or "message" as the display string; Text() folds the two.
type ChatReply struct {
	Response       string          `json:"response"`
	Message        string          `json:"message"`
	ConversationID string          `json:"conversation_id"`
	MessageType    string          `json:"message_type"`
	Data           json.RawMessage `json:"data,omitempty"`
}

// Text returns the display string for the reply.
func (r *ChatReply) Text() string {
	if r.Response != "" {
		return r.Response
	}
	return r.Message
}

// HistoryTurn is one stored turn of a server-side transcript.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History is the server-side transcript for a conversation.
type History struct {
	ConversationID string         `json:"conversation_id"`
	Messages       []HistoryTurn  `json:"messages"`
	Context        map[string]any `json:"context,omitempty"`
}

// Ack is the backend's acknowledgement of a reset.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SendMessage posts one user message scoped to conversationID and
// returns the assistant reply. Text must be non-empty after trimming
// and conversationID must be an established session token; an empty
// userID falls back to the anonymous sentinel.
func (c *Client) SendMessage(ctx context.Context, text, conversationID, userID string) (*ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is empty")
	}
	if conversationID == "" {
		return nil, fmt.Errorf("conversation id is required")
	}
	if userID == "" {
		userID = AnonymousUser
	}

	var reply ChatReply
	err := c.postJSON(ctx, "/api/chat/", chatRequest{
		Message:        text,
		ConversationID: conversationID,
		UserID:         userID,
	}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetHistory fetches prior turns for a conversation. Returns
// ErrNotFound when the backend holds no record for the id.
func (c *Client) GetHistory(ctx context.Context, conversationID string) (*History, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation id is required")
	}

	var history History
	if err := c.getJSON(ctx, "/api/chat/history/"+conversationID, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// ResetConversation discards backend session state for the id.
// Idempotent: resetting an already-reset conversation succeeds.
func (c *Client) ResetConversation(ctx context.Context, conversationID string) (*Ack, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation id is required")
	}

	var ack Ack
	if err := c.postJSON(ctx, "/api/chat/reset/"+conversationID, nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
