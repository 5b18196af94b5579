package jsonschema

import (
	"errors"
	"strings"
	"testing"
)

const diarySchema = `{
	"type": "object",
	"required": ["id", "title", "description"],
	"properties": {
		"id": { "type": "string", "format": "uuid" },
		"title": { "type": "string", "minLength": 1 },
		"description": { "type": "string" }
	}
}`

func TestCompile(t *testing.T) {
	tests := []struct {
		name          string
		schema        string
		expectedError bool
	}{
		{
			name:          "Valid schema",
			schema:        diarySchema,
			expectedError: false,
		},
		{
			name:          "Malformed JSON",
			schema:        `{"type": "object"`,
			expectedError: true,
		},
		{
			name:          "Unknown type",
			schema:        `{"type": "diary"}`,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := Compile("diary.json", tt.schema)
			if tt.expectedError {
				if err == nil {
					t.Fatalf("Expected an error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if schema.Name() != "diary.json" {
				t.Errorf("Expected name 'diary.json' but got '%s'", schema.Name())
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected MustCompile to panic on an invalid schema")
		}
	}()
	MustCompile("broken.json", `{`)
}

func TestSchema_Validate(t *testing.T) {
	schema := MustCompile("diary.json", diarySchema)

	tests := []struct {
		name             string
		json             string
		expectedValid    bool
		expectedContains []string
	}{
		{
			name:          "Valid diary",
			json:          `{"id": "6f1e3c2a-8d4b-4e7a-9c1d-2b3a4c5d6e7f", "title": "Diary title", "description": "Diary description"}`,
			expectedValid: true,
		},
		{
			name:             "Missing description",
			json:             `{"id": "6f1e3c2a-8d4b-4e7a-9c1d-2b3a4c5d6e7f", "title": "Diary title"}`,
			expectedValid:    false,
			expectedContains: []string{"description"},
		},
		{
			name:             "Wrong types",
			json:             `{"id": 7, "title": false, "description": "Diary description"}`,
			expectedValid:    false,
			expectedContains: []string{"/id", "/title"},
		},
		{
			name:             "Empty title",
			json:             `{"id": "6f1e3c2a-8d4b-4e7a-9c1d-2b3a4c5d6e7f", "title": "", "description": "Diary description"}`,
			expectedValid:    false,
			expectedContains: []string{"/title"},
		},
		{
			name:             "Not an object",
			json:             `[]`,
			expectedValid:    false,
			expectedContains: []string{"validation error at /"},
		},
		{
			name:             "Invalid JSON",
			json:             `{"id": `,
			expectedValid:    false,
			expectedContains: []string{"invalid JSON"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate([]byte(tt.json))

			if tt.expectedValid {
				if err != nil {
					t.Errorf("Expected valid JSON but got: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Expected validation errors but got none")
			}

			var validationErrors ValidationErrors
			if !errors.As(err, &validationErrors) {
				t.Fatalf("Expected ValidationErrors but got %T", err)
			}

			for _, s := range tt.expectedContains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("Expected error to contain '%s' but got '%s'", s, err.Error())
				}
			}
		})
	}
}

func TestSchema_ValidateValue(t *testing.T) {
	schema := MustCompile("diaries.json", `{"type": "array", "items": {"type": "object", "required": ["id"]}}`)

	valid := []interface{}{map[string]interface{}{"id": "a"}}
	if err := schema.ValidateValue(valid); err != nil {
		t.Errorf("Expected valid value but got: %v", err)
	}

	invalid := []interface{}{map[string]interface{}{"id": "a"}, map[string]interface{}{}}
	err := schema.ValidateValue(invalid)
	if err == nil {
		t.Fatalf("Expected validation errors but got none")
	}
	if !strings.Contains(err.Error(), "/1") {
		t.Errorf("Expected error to point at the second item but got '%s'", err.Error())
	}
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errs     ValidationErrors
		expected string
	}{
		{
			name:     "Empty",
			errs:     ValidationErrors{},
			expected: "",
		},
		{
			name:     "Single",
			errs:     ValidationErrors{errors.New("first")},
			expected: "first",
		},
		{
			name:     "Multiple",
			errs:     ValidationErrors{errors.New("first"), errors.New("second")},
			expected: "first; second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errs.Error(); got != tt.expected {
				t.Errorf("Expected '%s' but got '%s'", tt.expected, got)
			}
		})
	}
}
