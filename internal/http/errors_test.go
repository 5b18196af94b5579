package http

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingBodyError_Message(t *testing.T) {
	tests := []struct {
		name        string
		err         *MissingBodyError
		contains    []string
		notContains []string
	}{
		{
			name: "GET without parameters or body",
			err: &MissingBodyError{
				Target:     "https://localhost:44369/diaries/invalid-guid",
				Method:     "GET",
				StatusCode: 400,
				Reason:     "Bad Request",
				Text:       "The value 'invalid-guid' is not valid.",
			},
			contains: []string{
				"Request target: https://localhost:44369/diaries/invalid-guid",
				"Request method: GET",
				"Response status code: 400",
				"Response reason: Bad Request",
				"Response text: The value 'invalid-guid' is not valid.",
			},
			notContains: []string{"Request parameters:", "Request body:", "Decode error:"},
		},
		{
			name: "POST with body",
			err: &MissingBodyError{
				Target:     "https://localhost:44369/diaries",
				Method:     "POST",
				Body:       map[string]any{"title": "", "description": "Diary description"},
				StatusCode: 400,
				Reason:     "Bad Request",
			},
			contains: []string{
				"Request body: {description=Diary description, title=}",
			},
			notContains: []string{"Request parameters:"},
		},
		{
			name: "Empty body is still reported",
			err: &MissingBodyError{
				Method: "POST",
				Body:   map[string]any{},
			},
			contains: []string{"Request body: {}"},
		},
		{
			name: "Empty parameters are still reported",
			err: &MissingBodyError{
				Method:     "GET",
				Parameters: map[string]any{},
				Body:       map[string]any{},
			},
			contains: []string{"Request parameters: {}", "Request body: {}"},
		},
		{
			name: "GET with parameters",
			err: &MissingBodyError{
				Method:     "GET",
				Parameters: map[string]any{"page": 2, "limit": 10},
				StatusCode: 200,
			},
			contains:    []string{"Request parameters: {limit=10, page=2}"},
			notContains: []string{"Request body:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := tt.err.Error()

			assert.True(t, strings.HasPrefix(message, ErrMissingBody.Error()))
			for _, s := range tt.contains {
				assert.Contains(t, message, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, message, s)
			}
		})
	}
}

func TestMissingBodyError_Identity(t *testing.T) {
	var syntaxErr *json.SyntaxError
	cause := json.Unmarshal([]byte(`{`), &map[string]any{})

	err := error(&MissingBodyError{Method: "GET", Cause: cause})

	assert.ErrorIs(t, err, ErrMissingBody)
	assert.True(t, errors.As(err, &syntaxErr))
	assert.NotErrorIs(t, err, ErrAlreadySent)
}

func TestMethod_String(t *testing.T) {
	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "POST", MethodPost.String())
	assert.Equal(t, "PUT", MethodPut.String())
	assert.Equal(t, "DELETE", MethodDelete.String())

	var unset Method
	assert.Empty(t, unset.String())
	assert.False(t, unset.IsSet())
	assert.False(t, Method(42).IsSet())
}
