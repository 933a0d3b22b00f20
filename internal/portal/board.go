package portal

// MeetingStatus tells whether a board meeting already took place.
type MeetingStatus string

const (
	MeetingCompleted MeetingStatus = "completed"
	MeetingScheduled MeetingStatus = "scheduled"
)

// Meeting is a board meeting entry, optionally carrying a recording link
// and generated summary notes.
type Meeting struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Date     string        `json:"date"`
	VideoURL string        `json:"videoUrl,omitempty"`
	AINotes  string        `json:"aiNotes,omitempty"`
	Status   MeetingStatus `json:"status"`
}

// Discussion is a thread on the board discussion list.
type Discussion struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Replies      int    `json:"replies"`
	LastActivity string `json:"lastActivity"`
}
