package output

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/wesleyorama2/diaries/internal/http"
)

// exchange sends req through a server that answers with the given status,
// content type and payload.
func exchange(t *testing.T, build func(*http.Request) *http.Request, status int, contentType, payload string) *http.Response {
	t.Helper()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	client := http.NewClient(http.WithBaseURL(server.URL))
	resp, err := build(client.NewRequest()).Send(context.Background())
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	return resp
}

func getDiaries(r *http.Request) *http.Request {
	return r.Get().WithAPI("/diaries")
}
