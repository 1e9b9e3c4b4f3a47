package models

// Comment is the canonical internal comment record. Comments are append-only:
// once created they are never mutated, and each is referenced by exactly one
// ticket via its comment_ids.
//
// Body, HTMLBody and PlainBody are all derived from the single incoming body.
// Attachments are not supported and always empty.
type Comment struct {
	ID          int64  `json:"id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Type        string `json:"type"`
	Body        string `json:"body"`
	HTMLBody    string `json:"html_body"`
	PlainBody   string `json:"plain_body"`
	Public      bool   `json:"public"`
	AuthorID    int64  `json:"author_id"`
	Attachments []any  `json:"attachments"`
}
