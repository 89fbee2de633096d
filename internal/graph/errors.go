package graph

import "github.com/joestump/ideaboard/internal/service"

// gqlError carries a service error into the GraphQL errors array with its
// code under extensions. Unexpected errors get a generic message.
type gqlError struct {
	msg  string
	code string
	err  error
}

func (e *gqlError) Error() string { return e.msg }

func (e *gqlError) Unwrap() error { return e.err }

func (e *gqlError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func wrapError(err error) error {
	if kind := service.KindOf(err); kind != 0 {
		return &gqlError{msg: err.Error(), code: kind.Code(), err: err}
	}
	return &gqlError{msg: "internal server error", code: "INTERNAL_ERROR", err: err}
}
