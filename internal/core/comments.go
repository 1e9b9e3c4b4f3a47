package core

import (
	"github.com/goatkit/mockdesk/internal/apierrors"
	"github.com/goatkit/mockdesk/internal/convert"
	"github.com/goatkit/mockdesk/internal/models"
)

// ExpandShorthandComment allows the shorter syntax the emulated platform
// accepts: a bare string stands for {body: <string>}.
func ExpandShorthandComment(v any) (Payload, error) {
	switch c := v.(type) {
	case string:
		return Payload{"body": c}, nil
	case map[string]any:
		return c, nil
	}
	return nil, apierrors.Newf(apierrors.CodeValidationFailed, "comment must be a string or an object")
}

// TransformIncomingComment converts a loose comment payload into a canonical
// Comment record and inserts it into the snapshot. fallbackAuthorID is used
// when the payload names no author; callers pass the ticket's requester.
// The author, explicit or fallback, must exist in the snapshot.
func (s *Service) TransformIncomingComment(snap *models.Snapshot, p Payload, fallbackAuthorID int64) (*models.Comment, error) {
	if has(p, "id") {
		return nil, apierrors.Newf(apierrors.CodePropertyNotAllowed, "new comment - cannot specify id")
	}
	if err := rejectDenied(p, commentDenied); err != nil {
		return nil, err
	}

	body, err := stringField(p, "body", "")
	if err != nil {
		return nil, err
	}
	if body == "" {
		if body, err = stringField(p, "html_body", ""); err != nil {
			return nil, err
		}
	}
	if body == "" {
		return nil, apierrors.Newf(apierrors.CodeValidationFailed, "comment must have a body")
	}

	authorID := fallbackAuthorID
	if has(p, "author_id") {
		if authorID, err = convert.NormalizeID(p["author_id"]); err != nil {
			return nil, err
		}
	}
	if _, ok := snap.Users[authorID]; !ok {
		return nil, apierrors.Newf(apierrors.CodeNotFound, "author id not found: %d", authorID)
	}

	createdAt, err := stringField(p, "created_at", Timestamp())
	if err != nil {
		return nil, err
	}
	updatedAt, err := stringField(p, "updated_at", createdAt)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:          NextCommentID(snap),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Type:        "Comment",
		Body:        body,
		HTMLBody:    s.sanitizer.Sanitize(body),
		PlainBody:   s.sanitizer.StripTags(body),
		Public:      convert.ToBool(p["public"], true),
		AuthorID:    authorID,
		Attachments: []any{},
	}
	snap.Comments[comment.ID] = comment
	return comment, nil
}

// CommentsPage is the listing response for a ticket's comments. Pagination is
// not implemented, so the page is always the full set.
type CommentsPage struct {
	Comments         []*models.Comment `json:"comments"`
	OtherPagesRemain bool              `json:"otherPagesRemain"`
	NextPage         *string           `json:"next_page"`
	Count            int               `json:"count"`
}

// TicketComments returns all comments of a ticket in chronological order.
func (s *Service) TicketComments(snap *models.Snapshot, ticketID int64) (*CommentsPage, error) {
	ticket, ok := snap.Tickets[ticketID]
	if !ok {
		return nil, apierrors.Newf(apierrors.CodeNotFound, "ticket not found: %d", ticketID)
	}

	comments := []*models.Comment{}
	for _, commentID := range ticket.CommentIDs {
		if comment, ok := snap.Comments[commentID]; ok {
			comments = append(comments, comment)
		}
	}
	return &CommentsPage{Comments: comments, Count: len(comments)}, nil
}
