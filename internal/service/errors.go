package service

import "errors"

// Kind tags a service error so transports can map it without inspecting
// message text.
type Kind int

const (
	// KindValidation marks client input that failed the text rules.
	KindValidation Kind = iota + 1
	// KindNotFound marks a mutation that referenced a missing idea.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Code is the machine-readable code reported to API clients.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is a failure the service raises itself. Store failures are never
// converted into an Error; they pass through untouched.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrEmptyText is returned when the idea text is blank after trimming.
	ErrEmptyText = &Error{Kind: KindValidation, Message: "Idea text cannot be empty"}

	// ErrTextTooLong is returned when the untrimmed text exceeds MaxTextLength.
	ErrTextTooLong = &Error{Kind: KindValidation, Message: "Idea must be less than 280 characters"}

	// ErrIdeaNotFound is returned by UpvoteIdea for an unknown id.
	ErrIdeaNotFound = &Error{Kind: KindNotFound, Message: "Idea not found"}
)

// KindOf returns the Kind of err, or 0 if err is not a service Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
