package advisor

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one transcript entry. Entries are append-only and never
// mutated after creation; assistant entries carry the resolved intent and
// its confidence in Metadata.
type ChatMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
