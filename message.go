package fable

// Role identifies the author of a message in a model conversation.
type Role string

const (
	// RoleSystem carries stage instructions (a persona).
	RoleSystem Role = "system"
	// RoleUser carries end-user content.
	RoleUser Role = "user"
	// RoleAssistant carries model output.
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged entry in a model conversation.
type Message struct {
	Role Role
	Text string
}

// SystemMessage creates a new system message with the given text.
func SystemMessage(text string) *Message {
	return &Message{Role: RoleSystem, Text: text}
}

// UserMessage creates a new user message with the given text.
func UserMessage(text string) *Message {
	return &Message{Role: RoleUser, Text: text}
}

// AssistantMessage creates a new assistant message with the given text.
func AssistantMessage(text string) *Message {
	return &Message{Role: RoleAssistant, Text: text}
}
