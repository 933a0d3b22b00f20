package portal

import "time"

// NewsPriority marks how prominently a bulletin item should be shown.
type NewsPriority string

const (
	PriorityNormal    NewsPriority = "normal"
	PriorityImportant NewsPriority = "important"
	PriorityUrgent    NewsPriority = "urgent"
)

// NewsItem is a bulletin-board announcement shown on the home view.
type NewsItem struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Content  string       `json:"content"`
	Author   string       `json:"author"`
	Date     time.Time    `json:"date"`
	Priority NewsPriority `json:"priority"`
}
