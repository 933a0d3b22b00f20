package portal

import "time"

// ChatRoom is a community chat channel.
type ChatRoom struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unread      int    `json:"unread"`
}

// Message is a single chat message within a room.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
