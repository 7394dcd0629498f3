package jsonpath

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract extracts a value from a JSON document using a JSONPath expression.
// A []byte document is read as JSON text, anything else (such as a decoded
// response body) is encoded to JSON first. Strings come back unquoted, other
// values as their JSON text.
func Extract(doc interface{}, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	raw, err := documentText(doc)
	if err != nil {
		return "", err
	}

	gpath, err := toGjsonPath(path)
	if err != nil {
		return "", err
	}

	result := gjson.GetBytes(raw, gpath)
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	if result.Type == gjson.Null {
		return "null", nil
	}

	if result.Type == gjson.JSON {
		return result.Raw, nil
	}

	return result.String(), nil
}

// ExtractMultiple extracts each named JSONPath expression from doc. Every
// expression is attempted; failures are collected into one error.
func ExtractMultiple(doc interface{}, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string)
	var errors []string

	for _, name := range names {
		value, err := Extract(doc, paths[name])
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(errors) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(errors, "; "))
	}

	return results, nil
}

func documentText(doc interface{}) ([]byte, error) {
	if raw, ok := doc.([]byte); ok {
		if len(raw) == 0 {
			return nil, fmt.Errorf("empty JSON document")
		}
		return raw, nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return raw, nil
}

// toGjsonPath converts $.users[0]['first.name'] style expressions into
// gjson's users.0.first\.name form. [*] becomes gjson's # wildcard.
func toGjsonPath(path string) (string, error) {
	if !strings.HasPrefix(path, "$") {
		return "", fmt.Errorf("JSONPath must start with $: %s", path)
	}

	var segments []string
	rest := path[1:]

	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end == -1 {
				end = len(rest)
			}
			if end == 0 {
				return "", fmt.Errorf("empty segment in JSONPath: %s", path)
			}
			segments = append(segments, escapeKey(rest[:end]))
			rest = rest[end:]

		case '[':
			end := strings.Index(rest, "]")
			if end == -1 {
				return "", fmt.Errorf("unclosed bracket in JSONPath: %s", path)
			}
			inner := rest[1:end]
			rest = rest[end+1:]

			switch {
			case inner == "*":
				segments = append(segments, "#")
			case len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[len(inner)-1] == inner[0]:
				segments = append(segments, escapeKey(inner[1:len(inner)-1]))
			default:
				if _, err := strconv.Atoi(inner); err != nil {
					return "", fmt.Errorf("invalid index %q in JSONPath: %s", inner, path)
				}
				segments = append(segments, inner)
			}

		default:
			return "", fmt.Errorf("unexpected %q in JSONPath: %s", rest[0], path)
		}
	}

	if len(segments) == 0 {
		return "@this", nil
	}
	return strings.Join(segments, "."), nil
}

var gjsonEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

func escapeKey(key string) string {
	return gjsonEscaper.Replace(key)
}
