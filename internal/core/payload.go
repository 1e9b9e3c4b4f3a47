package core

import (
	"github.com/goatkit/mockdesk/internal/apierrors"
	"github.com/goatkit/mockdesk/internal/convert"
	"github.com/goatkit/mockdesk/internal/models"
)

// Payload is one loosely-structured incoming object, as decoded from JSON.
type Payload = map[string]any

// has reports whether the payload carries a usable value for key. JSON null
// counts as absent, matching how the emulated platform treats it.
func has(p Payload, key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// Platform fields the import transformer refuses because the emulator does
// not model them yet. Touching any of these aborts the batch.
var ticketImportDenied = []string{
	"external_id", "type", "priority", "recipient",
	"organization_id", "group_id", "collaborator_ids", "collaborators",
	"follower_ids", "email_cc_ids", "via_followup_source_id", "macro_ids",
	"ticket_form_id", "brand_id", "fields",
}

// Fields the update-merge engine refuses. Distinct from the import list:
// the real platform allows updating some fields it forbids on import and
// vice versa, so the two tables are kept separate on purpose.
var ticketUpdateDenied = []string{
	"assignee_email", "group_id", "organization_id", "collaborator_ids",
	"additional_collaborators", "followers", "priority", "email_ccs",
	"external_id", "problem_id", "due_at", "updated_stamp",
	"sharing_agreement_ids", "macro_ids", "attribute_value_ids",
}

// Attachment-carrying fields on comments, unsupported entirely.
var commentDenied = []string{"uploads", "attachments"}

// rejectDenied fails with a not-implemented error when the payload touches
// any field in the deny table.
func rejectDenied(p Payload, denied []string) error {
	for _, field := range denied {
		if has(p, field) {
			return apierrors.Newf(apierrors.CodeNotImplemented,
				"cannot set %q, not yet implemented", field)
		}
	}
	return nil
}

// stringField returns the payload string at key, or fallback when absent.
// A present non-string value is a validation error.
func stringField(p Payload, key, fallback string) (string, error) {
	if !has(p, key) {
		return fallback, nil
	}
	s, ok := p[key].(string)
	if !ok {
		return "", apierrors.Newf(apierrors.CodeValidationFailed, "%s must be a string", key)
	}
	return s, nil
}

// parseCustomFields validates and normalizes an incoming custom_fields value.
// Field ids arrive as numbers or numeric strings and are normalized through
// the id boundary like every other identifier.
func parseCustomFields(v any) ([]models.CustomField, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "custom_fields must be an array")
	}
	fields := make([]models.CustomField, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, apierrors.Newf(apierrors.CodeValidationFailed, "custom_fields entries must be objects")
		}
		id, err := convert.NormalizeID(obj["id"])
		if err != nil {
			return nil, err
		}
		fields = append(fields, models.CustomField{ID: id, Value: obj["value"]})
	}
	return fields, nil
}

// dedupeTags removes duplicate tags, keeping first occurrence order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
