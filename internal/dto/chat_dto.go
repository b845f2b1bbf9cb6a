package dto

import "time"

type SessionSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Preview   string    `json:"preview"`
	Active    bool      `json:"active"`
}

type CreateSessionResponse struct {
	ID string `json:"id"`
}

type TurnDTO struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// TurnStateResponse reports how the latest exchange in a session was answered:
// whether retrieval ran and which corpus documents grounded the reply. The
// state is cached per session and expires; a quiet session reads as ungrounded.
type TurnStateResponse struct {
	SessionID string   `json:"session_id"`
	Grounded  bool     `json:"grounded"`
	Sources   []string `json:"sources,omitempty"`
}

type SendMessageRequest struct {
	// SessionID is optional: when empty the user's active session is used.
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required"`
}

type SendMessageResponse struct {
	SessionID string   `json:"session_id"`
	Reply     string   `json:"reply"`
	Phase     string   `json:"phase"`
	Grounded  bool     `json:"grounded"`
	Sources   []string `json:"sources,omitempty"`
	// Degraded is true when generation exhausted its retries and the fixed
	// fallback reply was used instead.
	Degraded bool `json:"degraded"`
}
