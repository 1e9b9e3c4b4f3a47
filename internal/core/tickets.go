package core

import (
	"log"
	"strings"

	"github.com/goatkit/mockdesk/internal/apierrors"
	"github.com/goatkit/mockdesk/internal/convert"
	"github.com/goatkit/mockdesk/internal/models"
)

const (
	noSubjectPlaceholder     = "(no subject given)"
	noDescriptionPlaceholder = "(no description given)"
)

// TransformTicketImport converts a loose ticket payload into a canonical
// Ticket record. Only the bulk import entry point uses this; unlike standard
// creation, import may carry caller-supplied timestamps so historical data
// keeps its original dates. The ticket is not yet inserted into the snapshot;
// the caller attaches comments first and then inserts.
func (s *Service) TransformTicketImport(snap *models.Snapshot, p Payload) (*models.Ticket, error) {
	if has(p, "id") {
		return nil, apierrors.Newf(apierrors.CodePropertyNotAllowed, "new ticket - cannot specify id")
	}
	if err := rejectDenied(p, ticketImportDenied); err != nil {
		return nil, err
	}

	subject, err := stringField(p, "subject", "")
	if err != nil {
		return nil, err
	}
	if subject == "" {
		if subject, err = stringField(p, "raw_subject", noSubjectPlaceholder); err != nil {
			return nil, err
		}
	}
	description, err := stringField(p, "description", noDescriptionPlaceholder)
	if err != nil {
		return nil, err
	}
	status, err := stringField(p, "status", models.StatusOpen)
	if err != nil {
		return nil, err
	}
	if !models.ValidStatus(status) {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "unknown status: %q", status)
	}

	createdAt, err := stringField(p, "created_at", Timestamp())
	if err != nil {
		return nil, err
	}
	updatedAt, err := stringField(p, "updated_at", createdAt)
	if err != nil {
		return nil, err
	}

	requesterID, err := s.actorID(p, "requester_id", s.cfg.DefaultAdminID)
	if err != nil {
		return nil, err
	}
	// The submitter falls back to the requester before the default admin.
	submitterID, err := s.actorID(p, "submitter_id", requesterID)
	if err != nil {
		return nil, err
	}
	assigneeID, err := s.actorID(p, "assignee_id", s.cfg.DefaultAdminID)
	if err != nil {
		return nil, err
	}

	tags := []string{}
	if has(p, "tags") {
		parsed, ok := convert.ToStringSlice(p["tags"])
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "tags must be an array")
		}
		tags = dedupeTags(parsed)
	}
	customFields := []models.CustomField{}
	if has(p, "custom_fields") {
		if customFields, err = parseCustomFields(p["custom_fields"]); err != nil {
			return nil, err
		}
	}

	return &models.Ticket{
		ID:           NextTicketID(snap),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		Subject:      subject,
		RawSubject:   subject,
		Status:       status,
		Description:  description,
		RequesterID:  requesterID,
		SubmitterID:  submitterID,
		AssigneeID:   assigneeID,
		Tags:         tags,
		CustomFields: customFields,
		IsPublic:     convert.ToBool(p["is_public"], true),
		CommentIDs:   []int64{},
	}, nil
}

// actorID resolves an actor reference field to an id, falling back when the
// payload does not carry one.
func (s *Service) actorID(p Payload, key string, fallback int64) (int64, error) {
	if !has(p, key) {
		return fallback, nil
	}
	return convert.NormalizeID(p[key])
}

// TicketsImportMany handles the bulk import operation. Inline requester and
// submitter references are resolved before transformation; each ticket may
// carry comments (or a single shorthand comment) whose inline authors resolve
// the same way. Import deliberately skips triggers - only the standard update
// path fires them.
func (s *Service) TicketsImportMany(snap *models.Snapshot, payload Payload) ([]models.JobResult, error) {
	items, ok := payload["tickets"].([]any)
	if !ok {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "payload must carry a tickets array")
	}

	results := make([]models.JobResult, 0, len(items))
	for index, item := range items {
		p, ok := item.(map[string]any)
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "tickets entries must be objects")
		}
		if err := s.ResolveInlineUser(snap, p, "requester", "requester_id"); err != nil {
			return nil, err
		}
		if err := s.ResolveInlineUser(snap, p, "submitter", "submitter_id"); err != nil {
			return nil, err
		}

		ticket, err := s.TransformTicketImport(snap, p)
		if err != nil {
			return nil, err
		}

		// The single-comment shorthand stands for a one-element comments array.
		var commentItems []any
		if has(p, "comments") {
			if commentItems, ok = p["comments"].([]any); !ok {
				return nil, apierrors.Newf(apierrors.CodeValidationFailed, "comments must be an array")
			}
		}
		if has(p, "comment") {
			commentItems = []any{p["comment"]}
		}
		for _, commentItem := range commentItems {
			cp, err := ExpandShorthandComment(commentItem)
			if err != nil {
				return nil, err
			}
			if err := s.ResolveInlineUser(snap, cp, "author", "author_id"); err != nil {
				return nil, err
			}
			comment, err := s.TransformIncomingComment(snap, cp, ticket.RequesterID)
			if err != nil {
				return nil, err
			}
			ticket.CommentIDs = append(ticket.CommentIDs, comment.ID)
		}

		snap.Tickets[ticket.ID] = ticket
		results = append(results, models.JobResult{
			Index:     index,
			ID:        ticket.ID,
			AccountID: "not yet implemented",
			Success:   true,
		})
	}
	return results, nil
}

// TicketsUpdateMany handles the bulk update operation. Each item names an
// existing ticket by id plus partial fields; the merge engine produces the
// replacement record. A single comment may ride along (comments plural and
// comment timestamps are import-only). A successfully attached comment fires
// the trigger collaborator.
func (s *Service) TicketsUpdateMany(snap *models.Snapshot, payload Payload) ([]models.JobResult, error) {
	items, ok := payload["tickets"].([]any)
	if !ok {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "payload must carry a tickets array")
	}

	results := make([]models.JobResult, 0, len(items))
	for index, item := range items {
		p, ok := item.(map[string]any)
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "tickets entries must be objects")
		}
		id, err := convert.NormalizeID(p["id"])
		if err != nil {
			return nil, err
		}
		existing, ok := snap.Tickets[id]
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeNotFound, "cannot update, ticket id %d not found", id)
		}

		ticket, err := s.MergeTicketUpdate(existing, p)
		if err != nil {
			return nil, err
		}

		if has(p, "comments") {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed,
				"you can only set comments when importing")
		}
		if has(p, "comment") {
			cp, err := ExpandShorthandComment(p["comment"])
			if err != nil {
				return nil, err
			}
			if has(cp, "created_at") {
				return nil, apierrors.Newf(apierrors.CodeValidationFailed,
					"you can only set created_at when importing")
			}
			if err := s.ResolveInlineUser(snap, cp, "author", "author_id"); err != nil {
				return nil, err
			}
			comment, err := s.TransformIncomingComment(snap, cp, ticket.RequesterID)
			if err != nil {
				return nil, err
			}
			ticket.CommentIDs = append(ticket.CommentIDs, comment.ID)
			s.triggers.FireCommentPosted(snap, ticket, comment)
		}

		snap.Tickets[ticket.ID] = ticket
		results = append(results, models.JobResult{
			Index:   index,
			ID:      ticket.ID,
			Action:  "update",
			Status:  "Updated",
			Success: true,
		})
	}
	return results, nil
}

// TicketsShowMany resolves a comma-separated id list. A malformed id fails
// the request; a well-formed id with no ticket is logged and skipped - the
// one locally-recovered condition in the core.
func (s *Service) TicketsShowMany(snap *models.Snapshot, idList string) ([]*models.Ticket, error) {
	tickets := []*models.Ticket{}
	for _, raw := range strings.Split(idList, ",") {
		id, err := convert.NormalizeID(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		ticket, ok := snap.Tickets[id]
		if !ok {
			log.Printf("ticket not found %d", id)
			continue
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}
