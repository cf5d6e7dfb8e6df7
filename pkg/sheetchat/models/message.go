package models

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Outcome is what the orchestrator observes from an executed action.
type Outcome struct {
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}
