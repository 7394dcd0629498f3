package cli

import (
	"errors"

	"github.com/wesleyorama2/jsonreq/internal/http"
	"github.com/wesleyorama2/jsonreq/pkg/jsonschema"
)

// Exit codes for the jsonreq CLI
const (
	// ExitSuccess indicates the request completed
	ExitSuccess = 0

	// ExitFailure indicates a response problem: undecodable body, failed
	// extraction or schema validation
	ExitFailure = 1

	// ExitConfigError indicates a bad request file
	ExitConfigError = 3

	// ExitNetworkError indicates a transport failure
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage, including malformed URLs
	ExitUsageError = 64
)

// configError marks problems loading or validating a request file.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// usageError marks bad flags or arguments.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// transportError marks failures reported by the transport.
type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// ExitCode maps an error returned by Execute to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		cfgErr    *configError
		usageErr  *usageError
		netErr    *transportError
		decodeErr *http.BodyDecodeError
		schemaErr jsonschema.ValidationErrors
	)

	switch {
	case errors.Is(err, http.ErrMalformedURL), errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &decodeErr), errors.As(err, &schemaErr):
		return ExitFailure
	case errors.As(err, &netErr):
		return ExitNetworkError
	default:
		return ExitFailure
	}
}
