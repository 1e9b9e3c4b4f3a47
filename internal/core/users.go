package core

import (
	"sort"
	"strings"

	"github.com/goatkit/mockdesk/internal/apierrors"
	"github.com/goatkit/mockdesk/internal/convert"
	"github.com/goatkit/mockdesk/internal/models"
)

// TransformIncomingUser converts a loose user payload into a canonical User
// record and inserts it into the snapshot. Name and email are required and
// email must be unique (case-sensitive exact match) across the snapshot.
func (s *Service) TransformIncomingUser(snap *models.Snapshot, p Payload) (*models.User, error) {
	if has(p, "id") {
		return nil, apierrors.Newf(apierrors.CodePropertyNotAllowed, "new user - cannot specify id")
	}
	name, err := stringField(p, "name", "")
	if err != nil {
		return nil, err
	}
	email, err := stringField(p, "email", "")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "user must have a name")
	}
	if email == "" {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "user must have an email")
	}
	for _, existing := range snap.Users {
		if existing.Email == email {
			return nil, apierrors.Newf(apierrors.CodeDuplicateEmail,
				"user with this email already exists: %s", email)
		}
	}

	user := &models.User{
		ID:        NextUserID(snap),
		Name:      name,
		Email:     email,
		CreatedAt: Timestamp(),
	}
	snap.Users[user.ID] = user
	return user, nil
}

// UsersCreateMany handles the batch user-creation operation. Any invalid item
// aborts the whole batch. Returns the per-item job results.
func (s *Service) UsersCreateMany(snap *models.Snapshot, payload Payload) ([]models.JobResult, error) {
	items, ok := payload["users"].([]any)
	if !ok {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "payload must carry a users array")
	}

	results := make([]models.JobResult, 0, len(items))
	for index, item := range items {
		p, ok := item.(map[string]any)
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "users entries must be objects")
		}
		user, err := s.TransformIncomingUser(snap, p)
		if err != nil {
			return nil, err
		}
		results = append(results, models.JobResult{Index: index, ID: user.ID})
	}
	return results, nil
}

// UsersShowMany resolves a comma-separated id list. Unlike the ticket
// variant, a malformed or unknown user id fails the whole request.
func (s *Service) UsersShowMany(snap *models.Snapshot, idList string) ([]*models.User, error) {
	users := []*models.User{}
	for _, raw := range strings.Split(idList, ",") {
		id, err := convert.NormalizeID(strings.TrimSpace(raw))
		if err != nil {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "not a user id: %q", raw)
		}
		user, ok := snap.Users[id]
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeNotFound, "user not found: %d", id)
		}
		users = append(users, user)
	}
	return users, nil
}

// UsersSearchByEmail returns all users with an exactly matching email,
// ordered by id for deterministic fixtures.
func (s *Service) UsersSearchByEmail(snap *models.Snapshot, email string) []*models.User {
	matches := []*models.User{}
	for _, user := range snap.Users {
		if user.Email == email {
			matches = append(matches, user)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}
