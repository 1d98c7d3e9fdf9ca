package entity

// ChatMessage is one turn of a conversation as stored in the Redis
// session list. Timestamp is RFC 3339 UTC.
type ChatMessage struct {
	Role      string `json:"role"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
