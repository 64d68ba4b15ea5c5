package mistral

const ToolImageGeneration = "image_generation"

type Tool struct {
	Type string `json:"type"`
}

type CompletionArgs struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

type AgentRequest struct {
	Model          string          `json:"model"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Instructions   string          `json:"instructions,omitempty"`
	Tools          []Tool          `json:"tools,omitempty"`
	CompletionArgs *CompletionArgs `json:"completion_args,omitempty"`
}

type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

// ConversationRequest starts a conversation with an agent. Inputs is sent
// as a single user message.
type ConversationRequest struct {
	AgentID string `json:"agent_id"`
	Inputs  string `json:"inputs"`
	Store   *bool  `json:"store,omitempty"`
}
