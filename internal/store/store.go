// Package store owns the persisted snapshot: the durable mapping of ids to
// users, tickets, comments and jobs. The core never holds a reference into
// the live snapshot - each request takes a deep working copy, mutates it,
// and hands it back for a single atomic replace-and-persist. A failed
// request therefore leaves the previously persisted state untouched.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goatkit/mockdesk/internal/models"
)

// Seed describes the default admin account stamped into every fresh
// snapshot so actor-id fallbacks always resolve.
type Seed struct {
	AdminID    int64
	AdminName  string
	AdminEmail string
}

// Store holds the canonical snapshot and its backing file.
type Store struct {
	mu   sync.Mutex
	path string
	seed Seed
	snap *models.Snapshot
}

// Open loads the snapshot from path, or seeds a fresh one when the file does
// not exist yet.
func Open(path string, seed Seed) (*Store, error) {
	s := &Store{path: path, seed: seed}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		s.snap = seededSnapshot(seed)
		if err := s.persist(s.snap); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("loading state: %w", err)
	default:
		snap := models.NewSnapshot()
		if err := json.Unmarshal(data, snap); err != nil {
			return nil, fmt.Errorf("parsing state file %s: %w", path, err)
		}
		s.snap = snap
	}
	return s, nil
}

func seededSnapshot(seed Seed) *models.Snapshot {
	snap := models.NewSnapshot()
	snap.Users[seed.AdminID] = &models.User{
		ID:        seed.AdminID,
		Name:      seed.AdminName,
		Email:     seed.AdminEmail,
		CreatedAt: "1970-01-01T00:00:00Z",
	}
	return snap
}

// Copy returns a deep working copy of the current snapshot.
func (s *Store) Copy() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Save replaces the canonical snapshot with snap and persists it atomically:
// marshal to a temp file in the same directory, then rename over the old
// blob. Readers never observe a partial write.
func (s *Store) Save(snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(snap); err != nil {
		return err
	}
	s.snap = snap
	return nil
}

func (s *Store) persist(snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".mockdesk-state-*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// ResetTickets clears all tickets and comments, keeping users and jobs.
func (s *Store) ResetTickets() error {
	snap := s.Copy()
	snap.Tickets = make(map[int64]*models.Ticket)
	snap.Comments = make(map[int64]*models.Comment)
	return s.Save(snap)
}

// ResetAll discards the whole snapshot and reseeds the default admin.
func (s *Store) ResetAll() error {
	return s.Save(seededSnapshot(s.seed))
}
