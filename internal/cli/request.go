package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jsonreq/internal/config"
	"github.com/wesleyorama2/jsonreq/internal/http"
)

// addRequestFlags registers the flags shared by every command that builds a
// request.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("request", "X", "", "HTTP method (default GET, or the file's requestType)")
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include as 'Name: value' (can be used multiple times)")
	cmd.Flags().StringP("data", "d", "", "JSON request body")
	cmd.Flags().StringP("file", "f", "", "Request file (JSON or YAML) with url, requestType, headers and body")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
}

// buildRequest assembles a request from an optional request file, the URL
// argument and the flags. Flags and the argument win over the file.
func buildRequest(cmd *cobra.Command, args []string) (*http.Request, error) {
	req := &http.Request{Method: "GET"}

	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		rf, err := config.LoadRequest(file)
		if err != nil {
			return nil, &configError{err}
		}
		method, _ := cmd.Flags().GetString("request")
		for _, problem := range rf.Validate() {
			// Overridden fields need not be valid in the file.
			if problem.Path == "url" && len(args) > 0 {
				continue
			}
			if (problem.Path == "requestType" || problem.Path == "method") && method != "" {
				continue
			}
			return nil, &configError{problem}
		}
		req = rf.ToRequest()
		if req.Method == "" {
			req.Method = "GET"
		}
	}

	if len(args) > 0 {
		req.URL = args[0]
	}
	if req.URL == "" {
		return nil, &usageError{fmt.Errorf("a URL argument or a request file is required")}
	}

	if method, _ := cmd.Flags().GetString("request"); method != "" {
		req.Method = strings.ToUpper(method)
	}

	headers, _ := cmd.Flags().GetStringArray("header")
	for _, header := range headers {
		key, value, err := parseHeader(header)
		if err != nil {
			return nil, &usageError{err}
		}
		req.WithHeader(key, value)
	}

	if data, _ := cmd.Flags().GetString("data"); data != "" {
		var body interface{}
		if err := json.Unmarshal([]byte(data), &body); err != nil {
			return nil, &usageError{fmt.Errorf("--data is not valid JSON: %w", err)}
		}
		req.Body = body
	}

	return req, nil
}

// parseHeader splits "Name: value"
func parseHeader(header string) (string, string, error) {
	parts := strings.SplitN(header, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return "", "", fmt.Errorf("invalid header %q, expected 'Name: value'", header)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
