package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/jsonreq/internal/http"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatOptions(opts *http.Options, payload []byte) string
	FormatResponse(resp *http.Response) string
	FormatExtracted(values map[string]string) string
}

// OptionsData is the structured form of built transport options
type OptionsData struct {
	Method      string            `json:"method" yaml:"method"`
	Protocol    string            `json:"protocol" yaml:"protocol"`
	Host        string            `json:"host" yaml:"host"`
	Port        string            `json:"port,omitempty" yaml:"port,omitempty"`
	Path        string            `json:"path" yaml:"path"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Payload     string            `json:"payload,omitempty" yaml:"payload,omitempty"`
	PayloadSize int               `json:"payloadBytes" yaml:"payloadBytes"`
}

// ResponseData is the structured form of a normalized response
type ResponseData struct {
	StatusCode    int                 `json:"statusCode" yaml:"statusCode"`
	StatusMessage string              `json:"statusMessage" yaml:"statusMessage"`
	Headers       map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body          interface{}         `json:"body" yaml:"body"`
	Extracted     map[string]string   `json:"extracted,omitempty" yaml:"extracted,omitempty"`
}

// ParseFormat validates a format name
func ParseFormat(name string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(name)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (expected text, json or yaml)", name)
	}
}

// GetFormatter returns the formatter for the given format
func GetFormatter(format OutputFormat, verbose, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &StructuredFormatter{Marshal: marshalJSON}
	case FormatYAML:
		return &StructuredFormatter{Marshal: yaml.Marshal}
	default:
		return NewFormatter(verbose, noColor)
	}
}

// StructuredFormatter renders options and responses through a marshal
// function. Extracted values are folded into the response document, so
// FormatResponse should be called after FormatExtracted.
type StructuredFormatter struct {
	Marshal   func(v interface{}) ([]byte, error)
	extracted map[string]string
}

// FormatOptions implements FormatProvider
func (f *StructuredFormatter) FormatOptions(opts *http.Options, payload []byte) string {
	return f.render(OptionsData{
		Method:      opts.Method,
		Protocol:    opts.Protocol,
		Host:        opts.Host,
		Port:        opts.Port,
		Path:        opts.Path,
		Headers:     opts.Headers,
		Payload:     string(payload),
		PayloadSize: len(payload),
	})
}

// FormatResponse implements FormatProvider
func (f *StructuredFormatter) FormatResponse(resp *http.Response) string {
	return f.render(ResponseData{
		StatusCode:    resp.StatusCode,
		StatusMessage: resp.StatusMessage,
		Headers:       resp.Headers,
		Body:          resp.Body,
		Extracted:     f.extracted,
	})
}

// FormatExtracted records values for the next FormatResponse call and
// prints nothing itself.
func (f *StructuredFormatter) FormatExtracted(values map[string]string) string {
	f.extracted = values
	return ""
}

func (f *StructuredFormatter) render(v interface{}) string {
	out, err := f.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, "failed to marshal: "+err.Error())
	}
	s := string(out)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

func marshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
