package jsonpath

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract extracts a value from a JSON document using a JSONPath expression.
// Scalars are returned in their plain form, objects and arrays as raw JSON.
// A wildcard such as $[*].id yields a JSON array of the matches.
func Extract(data []byte, path string) (string, error) {
	result, err := lookup(data, path)
	if err != nil {
		return "", err
	}

	// Handle null values
	if result.Type == gjson.Null {
		return "null", nil
	}

	return result.String(), nil
}

// ExtractAll is like Extract but returns each element separately when the
// expression selects an array, e.g. every id in a list of diaries.
func ExtractAll(data []byte, path string) ([]string, error) {
	result, err := lookup(data, path)
	if err != nil {
		return nil, err
	}

	if !result.IsArray() {
		return []string{result.String()}, nil
	}

	elements := result.Array()
	values := make([]string, 0, len(elements))
	for _, element := range elements {
		values = append(values, element.String())
	}
	return values, nil
}

// ExtractMultiple extracts several named values at once. Values that were
// found are returned even when others fail.
func ExtractMultiple(data []byte, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string)
	var errors []string

	for name, path := range paths {
		value, err := Extract(data, path)
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

func lookup(data []byte, path string) (gjson.Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return gjson.Result{}, fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return gjson.Result{}, fmt.Errorf("empty JSONPath expression")
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("invalid JSON document")
	}

	result := gjson.GetBytes(data, convertToGjsonPath(path))
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

// convertToGjsonPath converts a JSONPath expression to a gjson path.
//
//	$.diaries[0].title -> diaries.0.title
//	$['title']         -> title
//	$[*].id            -> #.id
func convertToGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")

	var parts []string
	for path != "" {
		switch path[0] {
		case '.':
			path = path[1:]
		case '[':
			end := strings.Index(path, "]")
			if end < 0 {
				parts = append(parts, segment(path[1:]))
				path = ""
				continue
			}
			parts = append(parts, segment(path[1:end]))
			path = path[end+1:]
		default:
			end := strings.IndexAny(path, ".[")
			if end < 0 {
				end = len(path)
			}
			parts = append(parts, segment(path[:end]))
			path = path[end:]
		}
	}

	// a trailing wildcard selects the array itself; gjson's # would count it
	for len(parts) > 0 && parts[len(parts)-1] == "#" {
		parts = parts[:len(parts)-1]
	}

	if len(parts) == 0 {
		return "@this"
	}
	return strings.Join(parts, ".")
}

func segment(s string) string {
	s = strings.Trim(s, `'"`)
	if s == "*" {
		return "#"
	}
	return s
}
