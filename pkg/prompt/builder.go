package prompt

import (
	"fmt"
	"strings"

	"github.com/Ines207/ARI/internal/constant"
	"github.com/Ines207/ARI/internal/entity"
	"github.com/Ines207/ARI/pkg/index"
	"github.com/Ines207/ARI/pkg/llm"
	"github.com/Ines207/ARI/pkg/phase"
)

// Builder assembles the role-tagged message sequence for one turn: persona
// instructions fixed per phase, the full prior transcript in order, optional
// grounding context, and the new user message.
type Builder struct {
	phase      phase.Phase
	transcript []entity.Turn
	grounding  []index.Result
	message    string
}

func NewBuilder(p phase.Phase, transcript []entity.Turn, grounding []index.Result, message string) *Builder {
	return &Builder{
		phase:      p,
		transcript: transcript,
		grounding:  grounding,
		message:    message,
	}
}

// Build returns the complete message sequence for the generation capability.
func (b *Builder) Build() []llm.Message {
	messages := make([]llm.Message, 0, len(b.transcript)+2)

	messages = append(messages, llm.Message{
		Role:    "system",
		Content: b.personaPrompt(),
	})

	// Conversation memory: the prior transcript, order preserved.
	for _, turn := range b.transcript {
		role := "user"
		if turn.Speaker == entity.SpeakerAgent {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Text})
	}

	messages = append(messages, llm.Message{
		Role:    "user",
		Content: b.userContent(),
	})

	return messages
}

func (b *Builder) personaPrompt() string {
	if b.phase == phase.Advisory {
		return constant.AdvisoryPersonaPrompt
	}
	return constant.ReflectivePersonaPrompt
}

// userContent wraps the new message, prefixed with the grounded reference
// block when retrieval ran.
func (b *Builder) userContent() string {
	if len(b.grounding) == 0 {
		return b.message
	}

	var sb strings.Builder
	sb.WriteString(constant.GroundedContextHeader)
	sb.WriteString("\n\n<reference_material>\n")
	for i, res := range b.grounding {
		sb.WriteString(fmt.Sprintf("--- Excerpt %d (source: %s) ---\n", i+1, res.Source))
		sb.WriteString(res.Text)
		sb.WriteString("\n")
	}
	sb.WriteString("</reference_material>\n\n")
	sb.WriteString(b.message)
	return sb.String()
}
