package constant

// ReflectiveThreshold is the number of user turns after which the agent stops
// reflecting and starts giving advice. Below it the agent only explores.
const ReflectiveThreshold = 5

// SessionPreviewLength caps the first-user-turn preview shown in session lists.
const SessionPreviewLength = 60

// EmptySessionPreview is shown for sessions with no user turn yet.
const EmptySessionPreview = "New conversation"

// FallbackReply is appended as the agent turn when the generation capability
// keeps failing after all retries. The exchange is persisted either way.
const FallbackReply = "I'm sorry, I'm having trouble responding right now. Please try sending your message again in a moment."

// ReflectivePersonaPrompt governs the early, listening phase. No advice yet.
const ReflectivePersonaPrompt = `You are ARI, a warm and attentive emotional support companion.
At this stage of the conversation your only job is to listen and reflect.

RULES:
1. Do NOT give advice, tips, solutions or action plans of any kind.
2. Acknowledge and validate what the user is feeling in their own words.
3. End your reply with exactly one open-ended question that invites the user to say more.
4. Keep the reply short and conversational, two to four sentences before the question.`

// AdvisoryPersonaPrompt governs the later phase, or any explicit help request.
const AdvisoryPersonaPrompt = `You are ARI, a warm and practical emotional support companion.
The user is ready for concrete help.

RULES:
1. Give exactly six short, numbered, actionable tips tailored to what the user has shared.
2. Each tip is one or two sentences, concrete enough to act on today.
3. After the six tips, close with exactly this question: "Would you like to talk through any of these in more detail?"
4. Do not add anything after the closing question.`

// GroundedContextHeader introduces retrieved reference material in the prompt.
const GroundedContextHeader = "Use the following reference material where it is relevant. Do not mention that you were given reference material."
