package phase

import (
	"strings"

	"github.com/Ines207/ARI/internal/constant"
)

// Phase is the turn-policy state of a conversation. It is recomputed on every
// turn from the transcript and never persisted, so it cannot desynchronize
// from history even after a session is reloaded from storage.
type Phase string

const (
	// Reflective: listen, validate, ask open questions. No advice.
	Reflective Phase = "REFLECTIVE"
	// Advisory: give concrete, actionable tips.
	Advisory Phase = "ADVISORY"
)

// helpRequestPhrases force Advisory immediately, regardless of turn count.
var helpRequestPhrases = []string{
	"help me",
	"i need help",
	"what should i do",
	"what can i do",
	"give me advice",
	"any advice",
	"any tips",
	"give me tips",
	"how do i deal",
	"how do i cope",
	"how can i",
}

// Compute derives the phase from the number of user turns already in the
// transcript (not counting the incoming message) and the message itself.
// The count is monotonic: once past the threshold a session never reverts to
// Reflective, whatever the user sends next.
func Compute(priorUserTurns int, message string) Phase {
	if IsHelpRequest(message) {
		return Advisory
	}
	if priorUserTurns >= constant.ReflectiveThreshold {
		return Advisory
	}
	return Reflective
}

// IsHelpRequest reports whether the message explicitly asks for help.
func IsHelpRequest(message string) bool {
	lowered := strings.ToLower(message)
	for _, phrase := range helpRequestPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
