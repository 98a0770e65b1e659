package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ConversationTurn is a single user message / assistant reply pair.
type ConversationTurn struct {
	Timestamp         time.Time         `json:"timestamp"`
	UserMessage       string            `json:"user_message"`
	AssistantResponse string            `json:"assistant_response"`
	Intent            string            `json:"intent,omitempty"`
	Context           datatypes.JSONMap `json:"context,omitempty"`
}

// ConversationSession keeps the recent turns of one chat session plus the
// client/product the conversation is currently about.
type ConversationSession struct {
	SessionID       string             `json:"session_id"`
	CreatedAt       time.Time          `json:"created_at"`
	Turns           []ConversationTurn `json:"turns"`
	ActiveClientID  string             `json:"active_client_id,omitempty"`
	ActiveProductID string             `json:"active_product_id,omitempty"`
}
