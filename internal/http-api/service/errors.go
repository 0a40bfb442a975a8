package service

import "errors"

// Failure taxonomy shared by the services. Handlers map these onto HTTP
// status codes; services never leak raw storage errors for the cases below.
var (
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrReviewExists = errors.New("review already exists for this title")
	ErrSlugInUse    = errors.New("slug already in use")
)

// ValidationError carries a per-field message for malformed input that is
// recovered locally and returned to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
