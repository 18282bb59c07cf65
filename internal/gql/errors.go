package gql

// Machine-readable error codes surfaced in the GraphQL error extensions.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// ErrMessageInternal is the generic message for unexpected failures.
// Do not expose internal details to clients.
const ErrMessageInternal = "An unexpected error occurred. Please try again later."

// apiError is a resolver error that carries a code into the GraphQL error
// extensions, recognized by graphql-go via the Extensions method.
type apiError struct {
	message string
	code    string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func errUnauthenticated(message string) error {
	return &apiError{message: message, code: CodeUnauthenticated}
}

func errForbidden(message string) error {
	return &apiError{message: message, code: CodeForbidden}
}

func errNotFound(message string) error {
	return &apiError{message: message, code: CodeNotFound}
}

func errBadInput(message string) error {
	return &apiError{message: message, code: CodeBadUserInput}
}

func errInternal() error {
	return &apiError{message: ErrMessageInternal, code: CodeInternal}
}
