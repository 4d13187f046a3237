package graph

import (
	"errors"

	"usergraph/internal/app/account"
	"usergraph/internal/pkg/errs"
)

// gqlError is an opaque resolver error. graphql-go copies Extensions into the
// response when the returned error implements it directly.
type gqlError struct {
	message string
	code    int
}

func (e *gqlError) Error() string {
	return e.message
}

func (e *gqlError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func newGQLError(customErr *errs.CustomError) *gqlError {
	return &gqlError{message: customErr.Message, code: customErr.Code}
}

// toGraphQLError maps service failures to client-safe errors. Details stay in the logs.
func toGraphQLError(err error) error {
	if errors.Is(err, account.ErrStoreUnavailable) {
		return newGQLError(errs.NewError(errs.ErrServiceUnavailable))
	}
	return newGQLError(errs.NewError(errs.ErrUnknown))
}

// errorBody is the GraphQL-shaped envelope for requests rejected before execution.
type errorBody struct {
	Errors []errorEntry `json:"errors"`
}

type errorEntry struct {
	Message    string         `json:"message"`
	Extensions map[string]int `json:"extensions"`
}

func newErrorBody(customErr *errs.CustomError) errorBody {
	return errorBody{Errors: []errorEntry{{
		Message:    customErr.Message,
		Extensions: map[string]int{"code": customErr.Code},
	}}}
}
