package gate

import "strings"

// Decision is the routing outcome for one incoming message.
type Decision string

const (
	// Free means a purely conversational reply with no retrieval call.
	Free Decision = "FREE"
	// Ground means the reply should be grounded in retrieved corpus excerpts.
	Ground Decision = "GROUND"
)

// smallTalkPhrases short-circuit to Free. Checked before anything else so that
// greetings and thanks never pay the retrieval latency. Matched on word
// boundaries: "hey" must not fire inside "they", nor "bye" inside "maybe".
var smallTalkPhrases = []string{
	"hello",
	"hi",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
	"how are you",
	"what's up",
	"whats up",
	"thank you",
	"thanks",
	"bye",
	"goodbye",
	"see you",
	"good night",
	"who are you",
	"what are you",
	"what is your name",
	"your name",
	"nice to meet you",
}

// domainTerms route a message to the grounded path.
var domainTerms = []string{
	"anxiety",
	"anxious",
	"panic",
	"depress",
	"stress",
	"overwhelm",
	"insomnia",
	"sleep",
	"lonely",
	"loneliness",
	"grief",
	"grieving",
	"trauma",
	"burnout",
	"self-harm",
	"self harm",
	"suicid",
	"therapy",
	"therapist",
	"medication",
	"mental health",
	"coping",
	"mindfulness",
	"breathing",
	"sad",
	"worried",
	"worry",
	"fear",
	"afraid",
	"angry",
	"anger",
	"cry",
	"hopeless",
	"worthless",
	"exhausted",
	"tired all the time",
}

// Decide classifies a message as needing grounded retrieval or not. It is a
// deterministic, side-effect-free classifier: small talk wins over everything,
// then domain terms, and everything else defaults to Free. Small-talk phrases
// match whole words; domain terms are stems and match by substring, so
// "depress" covers "depressed" and "depression".
func Decide(message string) Decision {
	lowered := strings.ToLower(message)

	for _, phrase := range smallTalkPhrases {
		if containsPhrase(lowered, phrase) {
			return Free
		}
	}

	for _, term := range domainTerms {
		if strings.Contains(lowered, term) {
			return Ground
		}
	}

	return Free
}

// containsPhrase reports whether phrase occurs in text bounded by non-letter
// characters on both sides.
func containsPhrase(text, phrase string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		if isBoundary(text, i-1) && isBoundary(text, i+len(phrase)) {
			return true
		}
		start = i + 1
	}
}

func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return (c < 'a' || c > 'z') && (c < '0' || c > '9')
}
