package http

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingBody matches any *MissingBodyError via errors.Is.
	ErrMissingBody = errors.New("response has no JSON body")

	// ErrAlreadySent is returned when Send is called on a request that was already sent.
	ErrAlreadySent = errors.New("request has already been sent")
)

// MissingBodyError is returned when the parsed body of a Response is
// requested but none was decoded. It carries the originating request and
// the response details so a failure can be diagnosed from the error alone.
type MissingBodyError struct {
	Target     string
	Method     string
	Parameters map[string]any
	Body       map[string]any
	StatusCode int
	Reason     string
	Text       string

	// Cause is set when the response declared JSON but the payload could not be decoded.
	Cause error
}

// Error renders one line per field. Parameters and body only appear when
// set; an empty mapping is still shown as {}.
func (e *MissingBodyError) Error() string {
	var buf strings.Builder

	buf.WriteString(ErrMissingBody.Error())
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("  Request target: %s\n", e.Target))
	buf.WriteString(fmt.Sprintf("  Request method: %s\n", e.Method))
	if e.Parameters != nil {
		buf.WriteString(fmt.Sprintf("  Request parameters: %s\n", formatFields(e.Parameters)))
	}
	if e.Body != nil {
		buf.WriteString(fmt.Sprintf("  Request body: %s\n", formatFields(e.Body)))
	}
	buf.WriteString(fmt.Sprintf("  Response status code: %d\n", e.StatusCode))
	buf.WriteString(fmt.Sprintf("  Response reason: %s\n", e.Reason))
	buf.WriteString(fmt.Sprintf("  Response text: %s", e.Text))
	if e.Cause != nil {
		buf.WriteString(fmt.Sprintf("\n  Decode error: %v", e.Cause))
	}

	return buf.String()
}

// Is makes errors.Is(err, ErrMissingBody) succeed.
func (e *MissingBodyError) Is(target error) bool {
	return target == ErrMissingBody
}

func (e *MissingBodyError) Unwrap() error {
	return e.Cause
}

// formatFields prints a map with sorted keys so messages are stable.
func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
