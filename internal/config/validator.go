package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is every problem found in one configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return "invalid configuration: " + strings.Join(messages, "; ")
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks the configuration and returns ValidationErrors listing
// every invalid key, or nil.
func Validate(config *Config) error {
	var errors ValidationErrors

	if config.BaseURL == "" {
		errors = append(errors, ValidationError{
			Path:    KeyBaseURL,
			Message: "base_url is required",
		})
	} else if u, err := url.Parse(config.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Path:    KeyBaseURL,
			Message: fmt.Sprintf("invalid url: %v", err),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, ValidationError{
			Path:    KeyBaseURL,
			Message: fmt.Sprintf("unsupported scheme %q, expected http or https", u.Scheme),
		})
	} else if u.Host == "" {
		errors = append(errors, ValidationError{
			Path:    KeyBaseURL,
			Message: "host is required",
		})
	}

	if config.RequestTimeout <= 0 {
		errors = append(errors, ValidationError{
			Path:    KeyRequestTimeout,
			Message: "request_timeout must be positive",
		})
	}

	if !stringInSlice(strings.ToLower(config.LogLevel), logLevels) {
		errors = append(errors, ValidationError{
			Path:    KeyLogLevel,
			Message: fmt.Sprintf("invalid log level: %s", config.LogLevel),
		})
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}

func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
