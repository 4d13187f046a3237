/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrMethodNotAllowed indicates that the endpoint does not accept the request method.
	ErrMethodNotAllowed = 1008
)

// 3xxx: User and Identity Errors
const (
	// ErrUserAlreadyExists indicates that the requested username is already registered.
	ErrUserAlreadyExists = 3001

	// ErrUnauthorized indicates that the request carries no valid identity.
	ErrUnauthorized = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrServiceUnavailable indicates that a backing service (the user store) could not be reached.
	ErrServiceUnavailable = 5003
)
