package graphql

import (
	"telehealth-api/config"

	"github.com/graphql-go/graphql/gqlerrors"
)

// Error codes surfaced in the extensions.code field.
const (
	CodeBadUserInput     = "BAD_USER_INPUT"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeValidationFailed = "GRAPHQL_VALIDATION_FAILED"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

// clientSafeCodes are the error codes whose messages may reach a
// production client unchanged. Everything else is masked.
var clientSafeCodes = map[string]bool{
	CodeBadUserInput:     true,
	CodeUnauthenticated:  true,
	CodeForbidden:        true,
	CodeValidationFailed: true,
}

const maskedMessage = "Internal server error"

// apiError is a resolver error carrying a client-facing code. It
// implements gqlerrors.ExtendedError so the code survives formatting.
type apiError struct {
	message string
	code    string
}

func (e *apiError) Error() string {
	return e.message
}

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func badUserInput(message string) error {
	return &apiError{message: message, code: CodeBadUserInput}
}

func unauthenticated() error {
	return &apiError{message: "You must be logged in", code: CodeUnauthenticated}
}

func forbidden() error {
	return &apiError{message: "You do not have permission to access this resource", code: CodeForbidden}
}

func internal(message string) error {
	return &apiError{message: message, code: CodeInternal}
}

// FormatError rewrites a GraphQL error for the wire. In development the
// error passes through untouched. In production the message is replaced
// with a generic one unless the code is client safe, and extensions are
// stripped down to the code alone so stack traces and driver details
// never leak. The code itself survives masking so clients can still
// branch on it; locations and path always survive so clients can point
// at the failing field.
func FormatError(err gqlerrors.FormattedError, env string) gqlerrors.FormattedError {
	if env != config.EnvProduction {
		return err
	}

	code := CodeInternal
	if err.Extensions != nil {
		if c, ok := err.Extensions["code"].(string); ok && c != "" {
			code = c
		}
	}

	message := err.Message
	if !clientSafeCodes[code] {
		message = maskedMessage
	}

	return gqlerrors.FormattedError{
		Message:    message,
		Locations:  err.Locations,
		Path:       err.Path,
		Extensions: map[string]interface{}{"code": code},
	}
}

// FormatErrors applies FormatError across a result's error list.
func FormatErrors(errs []gqlerrors.FormattedError, env string) []gqlerrors.FormattedError {
	if len(errs) == 0 {
		return errs
	}
	formatted := make([]gqlerrors.FormattedError, len(errs))
	for i, err := range errs {
		formatted[i] = FormatError(err, env)
	}
	return formatted
}
