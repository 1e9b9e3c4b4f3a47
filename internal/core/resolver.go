package core

import (
	"log"

	"github.com/goatkit/mockdesk/internal/apierrors"
	"github.com/goatkit/mockdesk/internal/convert"
	"github.com/goatkit/mockdesk/internal/models"
)

// ResolveInlineUser implements the semi-undocumented inline-user feature of
// the batch ticket APIs: instead of requester_id: 234, a caller may send
// requester: {name: ..., email: ...} and have the user created or matched as
// a side effect.
//
// When the nested object under objKey is present it must carry both name and
// email. Existing users are searched by exact email:
//   - a match whose name also matches resolves to that user's id
//   - an email match under a different name is a conflict
//   - no match creates a new user
//
// The resolved id is written into the payload under idKey, and a bare id
// value under idKey is normalized, so the downstream transformer always sees
// a ready-to-use integer id. Resolution is idempotent: resubmitting the same
// {name, email} reuses the user it created the first time.
func (s *Service) ResolveInlineUser(snap *models.Snapshot, p Payload, objKey, idKey string) error {
	if has(p, objKey) {
		nested, ok := p[objKey].(map[string]any)
		if !ok {
			return apierrors.Newf(apierrors.CodeValidationFailed, "%s must be an object", objKey)
		}
		name, _ := nested["name"].(string)
		email, _ := nested["email"].(string)
		if name == "" || email == "" {
			return apierrors.Newf(apierrors.CodeValidationFailed,
				"attempted inline user but did not pass in an email or name")
		}

		if matches := s.UsersSearchByEmail(snap, email); len(matches) > 0 {
			var found *models.User
			for _, user := range matches {
				if user.Name == name {
					found = user
					break
				}
			}
			if found == nil {
				return apierrors.Newf(apierrors.CodeConflict,
					"attempted inline user but name does not match existing user with this email")
			}
			p[idKey] = found.ID
		} else {
			user, err := s.TransformIncomingUser(snap, Payload{"name": name, "email": email})
			if err != nil {
				return err
			}
			log.Printf("created inline user %d (%s)", user.ID, email)
			p[idKey] = user.ID
		}
		delete(p, objKey)
	}

	if has(p, idKey) {
		id, err := convert.NormalizeID(p[idKey])
		if err != nil {
			return err
		}
		p[idKey] = id
	}
	return nil
}
