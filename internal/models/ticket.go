package models

// Ticket statuses recognized by the emulated platform.
const (
	StatusNew     = "new"
	StatusOpen    = "open"
	StatusPending = "pending"
	StatusHold    = "hold"
	StatusSolved  = "solved"
	StatusClosed  = "closed"
)

// ValidStatus reports whether s is a recognized ticket status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusOpen, StatusPending, StatusHold, StatusSolved, StatusClosed:
		return true
	}
	return false
}

// CustomField is one {id, value} entry on a ticket, unique by ID.
type CustomField struct {
	ID    int64 `json:"id"`
	Value any   `json:"value"`
}

// Ticket is the canonical internal ticket record. CommentIDs preserves
// insertion order, which is chronological order. A closed ticket rejects
// every update.
type Ticket struct {
	ID           int64         `json:"id"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
	Subject      string        `json:"subject"`
	RawSubject   string        `json:"raw_subject"`
	Status       string        `json:"status"`
	Description  string        `json:"description"`
	RequesterID  int64         `json:"requester_id"`
	SubmitterID  int64         `json:"submitter_id"`
	AssigneeID   int64         `json:"assignee_id"`
	Tags         []string      `json:"tags"`
	CustomFields []CustomField `json:"custom_fields"`
	IsPublic     bool          `json:"is_public"`
	CommentIDs   []int64       `json:"comment_ids"`
}

// Clone returns a deep copy. The update-merge engine never mutates a stored
// ticket in place; it copies, edits the copy, and hands it back.
func (t *Ticket) Clone() *Ticket {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	c.CustomFields = append([]CustomField(nil), t.CustomFields...)
	c.CommentIDs = append([]int64(nil), t.CommentIDs...)
	return &c
}
