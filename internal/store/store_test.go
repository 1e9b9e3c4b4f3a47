package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatkit/mockdesk/internal/models"
)

var testSeed = Seed{AdminID: 111, AdminName: "Default Admin", AdminEmail: "admin@example.com"}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path, testSeed)
	require.NoError(t, err)
	return s, path
}

func TestOpenSeedsFreshSnapshot(t *testing.T) {
	s, path := openTestStore(t)

	snap := s.Copy()
	require.Len(t, snap.Users, 1)
	admin := snap.Users[111]
	require.NotNil(t, admin)
	assert.Equal(t, "admin@example.com", admin.Email)

	// Seeding persists immediately.
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSaveAndReload(t *testing.T) {
	s, path := openTestStore(t)

	snap := s.Copy()
	snap.Tickets[5001] = &models.Ticket{ID: 5001, Subject: "persisted", Tags: []string{"a"}}
	snap.Jobs["job-1"] = &models.Job{ID: "job-1"}
	require.NoError(t, s.Save(snap))

	reloaded, err := Open(path, testSeed)
	require.NoError(t, err)
	got := reloaded.Copy()
	require.NotNil(t, got.Tickets[5001])
	assert.Equal(t, "persisted", got.Tickets[5001].Subject)
	assert.NotNil(t, got.Jobs["job-1"])
	assert.NotNil(t, got.Users[111], "seeded admin survives reload")
}

func TestCopyIsolation(t *testing.T) {
	s, _ := openTestStore(t)

	working := s.Copy()
	working.Users[222] = &models.User{ID: 222, Name: "x", Email: "x@a.com"}
	working.Users[111].Name = "mutated"

	// An unsaved working copy never leaks into the canonical snapshot.
	fresh := s.Copy()
	assert.Nil(t, fresh.Users[222])
	assert.Equal(t, "Default Admin", fresh.Users[111].Name)
}

func TestResetTickets(t *testing.T) {
	s, _ := openTestStore(t)

	snap := s.Copy()
	snap.Users[222] = &models.User{ID: 222, Name: "keep", Email: "keep@a.com"}
	snap.Tickets[5001] = &models.Ticket{ID: 5001}
	snap.Comments[9001] = &models.Comment{ID: 9001}
	snap.Jobs["job-1"] = &models.Job{ID: "job-1"}
	require.NoError(t, s.Save(snap))

	require.NoError(t, s.ResetTickets())
	got := s.Copy()
	assert.Empty(t, got.Tickets)
	assert.Empty(t, got.Comments)
	assert.NotNil(t, got.Users[222], "users survive a ticket reset")
	assert.NotNil(t, got.Jobs["job-1"], "jobs survive a ticket reset")
}

func TestResetAll(t *testing.T) {
	s, _ := openTestStore(t)

	snap := s.Copy()
	snap.Users[222] = &models.User{ID: 222, Name: "gone", Email: "gone@a.com"}
	snap.Tickets[5001] = &models.Ticket{ID: 5001}
	require.NoError(t, s.Save(snap))

	require.NoError(t, s.ResetAll())
	got := s.Copy()
	assert.Empty(t, got.Tickets)
	require.Len(t, got.Users, 1)
	assert.NotNil(t, got.Users[111], "default admin reseeded")
}

func TestOpenRejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path, testSeed)
	require.Error(t, err)
}
