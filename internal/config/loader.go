package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/jsonreq/internal/http"
)

// RequestFile is a request descriptor stored on disk
type RequestFile struct {
	URL         string            `json:"url" yaml:"url"`
	RequestType string            `json:"requestType,omitempty" yaml:"requestType,omitempty"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Vars        map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// LoadRequest loads a request descriptor. Files ending in .yaml or .yml are
// read as YAML, everything else as JSON.
func LoadRequest(path string) (*RequestFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("request file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading request file: %w", err)
	}

	rf, err := ParseRequest(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("error parsing request file %s: %w", path, err)
	}

	return rf, nil
}

// ParseRequest decodes a descriptor in the given format ("json" or "yaml")
func ParseRequest(data []byte, format string) (*RequestFile, error) {
	var rf RequestFile

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, err
		}
		rf.Body = normalizeYAML(rf.Body)
	case "json":
		if err := json.Unmarshal(data, &rf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return &rf, nil
}

// HTTPMethod returns requestType, falling back to method
func (rf *RequestFile) HTTPMethod() string {
	if rf.RequestType != "" {
		return rf.RequestType
	}
	return rf.Method
}

// ToRequest converts the descriptor into a request, with {{variables}}
// substituted in the URL and header values.
func (rf *RequestFile) ToRequest() *http.Request {
	headers := ProcessEnvironmentInMap(rf.Headers, rf.Vars)
	if rf.Headers == nil {
		headers = nil
	}

	return &http.Request{
		URL:     ProcessEnvironment(rf.URL, rf.Vars),
		Method:  strings.ToUpper(rf.HTTPMethod()),
		Headers: headers,
		Body:    rf.Body,
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// normalizeYAML turns map[interface{}]interface{} values, which
// encoding/json cannot encode, into map[string]interface{}.
func normalizeYAML(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		for key, value := range v {
			v[key] = normalizeYAML(value)
		}
		return v
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, value := range v {
			m[fmt.Sprint(key)] = normalizeYAML(value)
		}
		return m
	case []interface{}:
		for i, value := range v {
			v[i] = normalizeYAML(value)
		}
		return v
	default:
		return v
	}
}

// ProcessEnvironment replaces {{name}} placeholders in input
func ProcessEnvironment(input string, env map[string]string) string {
	result := input
	for key, value := range env {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// ProcessEnvironmentInMap applies ProcessEnvironment to every value in input
func ProcessEnvironmentInMap(input map[string]string, env map[string]string) map[string]string {
	result := make(map[string]string, len(input))
	for key, value := range input {
		result[key] = ProcessEnvironment(value, env)
	}
	return result
}
