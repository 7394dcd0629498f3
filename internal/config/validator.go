package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a request file validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var knownMethods = []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "TRACE", "CONNECT"}

// Validate reports every problem with the descriptor
func (rf *RequestFile) Validate() []ValidationError {
	var errors []ValidationError

	if rf.URL == "" {
		errors = append(errors, ValidationError{
			Path:    "url",
			Message: "url is required",
		})
	} else if u, err := url.Parse(ProcessEnvironment(rf.URL, rf.Vars)); err != nil || !u.IsAbs() {
		errors = append(errors, ValidationError{
			Path:    "url",
			Message: fmt.Sprintf("url must be absolute: %s", rf.URL),
		})
	}

	method := rf.HTTPMethod()
	if method == "" {
		errors = append(errors, ValidationError{
			Path:    "requestType",
			Message: "requestType is required",
		})
	} else if !stringInSlice(strings.ToUpper(method), knownMethods) {
		errors = append(errors, ValidationError{
			Path:    "requestType",
			Message: fmt.Sprintf("unknown HTTP method: %s", method),
		})
	}

	if rf.RequestType != "" && rf.Method != "" && !strings.EqualFold(rf.RequestType, rf.Method) {
		errors = append(errors, ValidationError{
			Path:    "method",
			Message: "method and requestType disagree",
		})
	}

	for name := range rf.Headers {
		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Path:    "headers",
				Message: "header names cannot be empty",
			})
			break
		}
	}

	return errors
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
