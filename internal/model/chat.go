package model

// ChatMessage is one turn of a conversation kept in the session store.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
