package models

// User is the canonical internal user record. Users are immutable once
// created; email is unique (case-sensitive) across the whole snapshot.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
