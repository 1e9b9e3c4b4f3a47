package core

import "github.com/goatkit/mockdesk/internal/models"

// Fresh snapshots start each entity kind at a fixed base so ids from
// different kinds are visually distinct in fixtures.
const (
	userIDBase    = 1001
	ticketIDBase  = 5001
	commentIDBase = 9001
)

// nextID returns an id strictly greater than every id in existing, or base
// when none exist. The caller must record the returned id into the snapshot
// before generating the next one, so entities created in the same batch never
// collide. Ids are never reused after deletion.
func nextID[T any](existing map[int64]T, base int64) int64 {
	next := base
	for id := range existing {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// NextUserID returns a fresh user id for the snapshot.
func NextUserID(snap *models.Snapshot) int64 {
	return nextID(snap.Users, userIDBase)
}

// NextTicketID returns a fresh ticket id for the snapshot.
func NextTicketID(snap *models.Snapshot) int64 {
	return nextID(snap.Tickets, ticketIDBase)
}

// NextCommentID returns a fresh comment id for the snapshot.
func NextCommentID(snap *models.Snapshot) int64 {
	return nextID(snap.Comments, commentIDBase)
}
