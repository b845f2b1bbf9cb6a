package entity

import "time"

type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerAgent Speaker = "agent"
)

// Turn is one speaker-attributed message. Transcripts are append-only: a turn
// is never edited or reordered once written.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is a named conversation thread owned by exactly one user.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Transcript []Turn    `json:"transcript"`
}

// UserTurnCount counts user-authored turns. Conversation phase is derived
// from this count on every request instead of being stored, so it can never
// drift from the transcript.
func (s *Session) UserTurnCount() int {
	n := 0
	for _, t := range s.Transcript {
		if t.Speaker == SpeakerUser {
			n++
		}
	}
	return n
}

// FirstUserTurn returns the text of the earliest user turn, or "" if the
// session has none yet. Used for session list previews.
func (s *Session) FirstUserTurn() string {
	for _, t := range s.Transcript {
		if t.Speaker == SpeakerUser {
			return t.Text
		}
	}
	return ""
}
