package models

// Snapshot is the full in-memory state at a point in time: all users,
// tickets, comments and jobs. The store owns the canonical snapshot; every
// operation works on a copy and hands it back for an atomic replace, so a
// mid-request failure never leaves a partial write behind.
type Snapshot struct {
	Users    map[int64]*User    `json:"users"`
	Tickets  map[int64]*Ticket  `json:"tickets"`
	Comments map[int64]*Comment `json:"comments"`
	Jobs     map[string]*Job    `json:"jobs"`
}

// NewSnapshot returns an empty snapshot with all maps allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:    make(map[int64]*User),
		Tickets:  make(map[int64]*Ticket),
		Comments: make(map[int64]*Comment),
		Jobs:     make(map[string]*Job),
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := NewSnapshot()
	for id, u := range s.Users {
		copied := *u
		c.Users[id] = &copied
	}
	for id, t := range s.Tickets {
		c.Tickets[id] = t.Clone()
	}
	for id, cm := range s.Comments {
		copied := *cm
		copied.Attachments = append([]any(nil), cm.Attachments...)
		c.Comments[id] = &copied
	}
	for id, j := range s.Jobs {
		c.Jobs[id] = j.Clone()
	}
	return c
}
