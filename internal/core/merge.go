package core

import (
	"github.com/goatkit/mockdesk/internal/apierrors"
	"github.com/goatkit/mockdesk/internal/convert"
	"github.com/goatkit/mockdesk/internal/models"
)

// MergeTicketUpdate computes a new ticket from an existing one plus a partial
// update payload. The existing record is never touched; callers replace it in
// the snapshot only after the whole merge succeeds.
//
// Per-field rules, in order:
//  1. a closed ticket rejects everything
//  2. the deny table rejects fields the emulator does not model
//  3. subject, requester_id, assignee_id, status replace when present
//  4. additional_tags prepends, deduplicated (incoming first)
//  5. remove_tags filters
//  6. tags replaces wholesale, overriding steps 4-5 within the same call
//  7. custom_fields merges by id, incoming entries winning ties
//  8. updated_at is always refreshed
func (s *Service) MergeTicketUpdate(existing *models.Ticket, p Payload) (*models.Ticket, error) {
	if existing.Status == models.StatusClosed {
		return nil, apierrors.Newf(apierrors.CodeTicketClosed, "cannot update a closed ticket")
	}
	if err := rejectDenied(p, ticketUpdateDenied); err != nil {
		return nil, err
	}

	ticket := existing.Clone()

	if has(p, "subject") {
		subject, err := stringField(p, "subject", "")
		if err != nil {
			return nil, err
		}
		ticket.Subject = subject
		ticket.RawSubject = subject
	}
	if has(p, "requester_id") {
		id, err := convert.NormalizeID(p["requester_id"])
		if err != nil {
			return nil, err
		}
		ticket.RequesterID = id
	}
	if has(p, "assignee_id") {
		id, err := convert.NormalizeID(p["assignee_id"])
		if err != nil {
			return nil, err
		}
		ticket.AssigneeID = id
	}
	if has(p, "status") {
		status, err := stringField(p, "status", "")
		if err != nil {
			return nil, err
		}
		if !models.ValidStatus(status) {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "unknown status: %q", status)
		}
		ticket.Status = status
	}

	// Incremental tag edits apply first; a literal tags payload in the same
	// call then overrides them. This ordering is load-bearing: clients rely
	// on explicit tags winning.
	if has(p, "additional_tags") {
		added, ok := convert.ToStringSlice(p["additional_tags"])
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "additional_tags must be an array")
		}
		ticket.Tags = dedupeTags(append(added, ticket.Tags...))
	}
	if has(p, "remove_tags") {
		removed, ok := convert.ToStringSlice(p["remove_tags"])
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "remove_tags must be an array")
		}
		drop := make(map[string]struct{}, len(removed))
		for _, tag := range removed {
			drop[tag] = struct{}{}
		}
		kept := make([]string, 0, len(ticket.Tags))
		for _, tag := range ticket.Tags {
			if _, gone := drop[tag]; !gone {
				kept = append(kept, tag)
			}
		}
		ticket.Tags = kept
	}
	if has(p, "tags") {
		tags, ok := convert.ToStringSlice(p["tags"])
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "tags must be an array")
		}
		ticket.Tags = dedupeTags(tags)
	}

	// Confirmed against the live platform: custom_fields merges, it does not
	// replace the collection. Incoming entries win per field id.
	if has(p, "custom_fields") {
		incoming, err := parseCustomFields(p["custom_fields"])
		if err != nil {
			return nil, err
		}
		merged := make([]models.CustomField, 0, len(incoming)+len(ticket.CustomFields))
		seen := make(map[int64]struct{}, len(incoming))
		for _, field := range append(incoming, ticket.CustomFields...) {
			if _, ok := seen[field.ID]; ok {
				continue
			}
			seen[field.ID] = struct{}{}
			merged = append(merged, field)
		}
		ticket.CustomFields = merged
	}

	ticket.UpdatedAt = Timestamp()
	return ticket, nil
}
