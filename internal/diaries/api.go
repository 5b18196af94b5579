// Package diaries wraps the Diaries service resource in typed calls built
// on the request builder.
package diaries

import (
	"context"

	"github.com/wesleyorama2/diaries/internal/http"
)

// Path is the collection path of the resource.
const Path = "/diaries"

// MaxTitleLength is the longest title the service accepts.
const MaxTitleLength = 300

// API issues one request per call and returns the wrapped response as is,
// so callers can assert on any status code.
type API struct {
	client *http.Client
}

// NewAPI returns an API sending through client.
func NewAPI(client *http.Client) *API {
	return &API{client: client}
}

// Client returns the client requests are sent through.
func (a *API) Client() *http.Client {
	return a.client
}

// GetAll lists every diary.
func (a *API) GetAll(ctx context.Context) (*http.Response, error) {
	return a.client.NewRequest().
		Get().
		WithAPI(Path).
		Send(ctx)
}

// Get fetches one diary. The id is placed in the path verbatim so that
// malformed ids reach the service unchanged.
func (a *API) Get(ctx context.Context, id string) (*http.Response, error) {
	return a.client.NewRequest().
		Get().
		WithAPI(itemPath(id)).
		Send(ctx)
}

// Add creates a diary.
func (a *API) Add(ctx context.Context, title, description string) (*http.Response, error) {
	return a.client.NewRequest().
		Post().
		WithAPI(Path).
		WithBody(fields(title, description)).
		Send(ctx)
}

// Update replaces the title and description of a diary.
func (a *API) Update(ctx context.Context, id, title, description string) (*http.Response, error) {
	return a.client.NewRequest().
		Put().
		WithAPI(itemPath(id)).
		WithBody(fields(title, description)).
		Send(ctx)
}

// Remove deletes a diary.
func (a *API) Remove(ctx context.Context, id string) (*http.Response, error) {
	return a.client.NewRequest().
		Delete().
		WithAPI(itemPath(id)).
		Send(ctx)
}

func itemPath(id string) string {
	return Path + "/" + id
}

func fields(title, description string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": description,
	}
}
