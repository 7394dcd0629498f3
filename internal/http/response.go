package http

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response is the normalized result of a request. Body holds the decoded
// JSON value when the response declared a JSON content type, and the raw
// text as a string otherwise.
type Response struct {
	StatusCode    int
	StatusMessage string
	Headers       http.Header
	Body          interface{}
}

// IsJSON returns true if Body was decoded from JSON
func (r *Response) IsJSON() bool {
	return isJSONContentType(r.Headers)
}

// GetHeader returns the first value of the named header, matched
// case-insensitively
func (r *Response) GetHeader(key string) string {
	for name, values := range r.Headers {
		if strings.EqualFold(name, key) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// GetBodyAsString returns the body as text. Decoded JSON bodies are encoded
// back to compact JSON.
func (r *Response) GetBodyAsString() (string, error) {
	if s, ok := r.Body.(string); ok && !r.IsJSON() {
		return s, nil
	}
	data, err := marshalBody(r.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetBodyAsJSON re-decodes the body into v
func (r *Response) GetBodyAsJSON(v interface{}) error {
	text, err := r.GetBodyAsString()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(text), v)
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// isJSONContentType reports whether any header named content-type, in any
// casing, has a value containing "json". This is a substring match, so
// application/json-seq and text/x-json both count.
func isJSONContentType(headers http.Header) bool {
	_, ok := jsonContentType(headers)
	return ok
}

func jsonContentType(headers http.Header) (string, bool) {
	for name, values := range headers {
		if !strings.EqualFold(name, "content-type") {
			continue
		}
		for _, value := range values {
			if strings.Contains(value, "json") {
				return value, true
			}
		}
	}
	return "", false
}
