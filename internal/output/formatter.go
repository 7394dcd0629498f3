package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/jsonreq/internal/http"
)

// Formatter formats built options and responses as human-readable text
type Formatter struct {
	Verbose bool
	NoColor bool
	colors  *palette
}

// NewFormatter creates a new text formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		colors:  newPalette(noColor),
	}
}

// FormatOptions formats the transport options for a request
func (f *Formatter) FormatOptions(opts *http.Options, payload []byte) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s\n", f.colors.request.Sprint(opts.Method+" "+opts.URL())))

	if f.Verbose {
		buf.WriteString(fmt.Sprintf("  Protocol: %s\n", opts.Protocol))
		buf.WriteString(fmt.Sprintf("  Host:     %s\n", opts.Host))
		if opts.Port != "" {
			buf.WriteString(fmt.Sprintf("  Port:     %s\n", opts.Port))
		}
		buf.WriteString(fmt.Sprintf("  Path:     %s\n", opts.Path))
	}

	if len(opts.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(opts.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.colors.key.Sprint(key), opts.Headers[key]))
		}
	}

	if payload != nil {
		buf.WriteString("  Body: ")
		buf.WriteString(formatJSONString(string(payload)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a normalized response for display
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s\n",
		f.colors.status(resp).Sprint(strings.TrimSpace(fmt.Sprintf("%d %s", resp.StatusCode, resp.StatusMessage)))))

	if f.Verbose {
		buf.WriteString("  Headers:\n")
		names := make([]string, 0, len(resp.Headers))
		for name := range resp.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, value := range resp.Headers[name] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n", f.colors.key.Sprint(name), value))
			}
		}
	}

	body, err := resp.GetBodyAsString()
	if err == nil && body != "" {
		buf.WriteString("  Body:\n")
		if resp.IsJSON() {
			body = formatJSONString(body)
		}
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatExtracted formats values pulled out of a response body
func (f *Formatter) FormatExtracted(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("  Extracted:\n")
	for _, name := range sortedKeys(values) {
		buf.WriteString(fmt.Sprintf("    %s = %s\n", f.colors.key.Sprint(name), values[name]))
	}
	return buf.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return prettyJSON.String()
}
