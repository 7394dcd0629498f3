package http

import (
	"errors"
	"fmt"
)

// ErrMalformedURL is matched by every *MalformedURLError.
var ErrMalformedURL = errors.New("malformed URL")

// MalformedURLError is returned when a request URL cannot be parsed or is
// not absolute. No request is attempted.
type MalformedURLError struct {
	URL string
	Err error
}

func (e *MalformedURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed URL %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("malformed URL %q: not absolute", e.URL)
}

func (e *MalformedURLError) Unwrap() error { return e.Err }

// Is reports ErrMalformedURL as a match.
func (e *MalformedURLError) Is(target error) bool {
	return target == ErrMalformedURL
}

// BodyDecodeError is returned when a response claims a JSON content type but
// its body does not decode.
type BodyDecodeError struct {
	ContentType string
	Err         error
}

func (e *BodyDecodeError) Error() string {
	return fmt.Sprintf("decoding %s response body: %v", e.ContentType, e.Err)
}

func (e *BodyDecodeError) Unwrap() error { return e.Err }
