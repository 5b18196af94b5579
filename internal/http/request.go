package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
)

// Request accumulates the pieces of one HTTP exchange. Nothing is sent until
// Send is called. Every configuration method returns the same Request so
// calls can be chained:
//
//	resp, err := client.NewRequest().
//	    Post().
//	    WithAPI("/diaries").
//	    WithBody(map[string]any{"title": "Diary title"}).
//	    Send(ctx)
//
// A Request is single-use and must not be configured from several goroutines.
type Request struct {
	client     *Client
	method     Method
	target     string
	parameters map[string]any
	body       map[string]any
	sent       bool
}

// Get selects the GET verb.
func (r *Request) Get() *Request {
	r.method = MethodGet
	return r
}

// Post selects the POST verb.
func (r *Request) Post() *Request {
	r.method = MethodPost
	return r
}

// Put selects the PUT verb.
func (r *Request) Put() *Request {
	r.method = MethodPut
	return r
}

// Delete selects the DELETE verb.
func (r *Request) Delete() *Request {
	r.method = MethodDelete
	return r
}

// WithAPI sets the target to the client's base URL followed by path.
func (r *Request) WithAPI(path string) *Request {
	r.target = r.client.baseURL + path
	return r
}

// WithURLParameters sets the query parameters sent with the request.
func (r *Request) WithURLParameters(parameters map[string]any) *Request {
	r.parameters = parameters
	return r
}

// WithBody sets the fields sent as a JSON object. A nil map sends no body.
func (r *Request) WithBody(body map[string]any) *Request {
	r.body = body
	return r
}

// Method returns the selected verb.
func (r *Request) Method() Method {
	return r.method
}

// Target returns the absolute request URL.
func (r *Request) Target() string {
	return r.target
}

// URL returns the target with the query parameters encoded as they are
// sent on the wire.
func (r *Request) URL() string {
	values := r.queryValues()
	if len(values) == 0 {
		return r.target
	}
	return r.target + "?" + values.Encode()
}

// Parameters returns the query parameters as they were given.
func (r *Request) Parameters() map[string]any {
	return r.parameters
}

// BodyFields returns the body as it was given, before encoding.
func (r *Request) BodyFields() map[string]any {
	return r.body
}

// Send executes the request and wraps the result. It panics when no verb
// was selected. Transport failures are returned as they come from the
// transport.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	if !r.method.IsSet() {
		panic(fmt.Sprintf("http: request to %q sent without a method; call Get, Post, Put or Delete first", r.target))
	}
	if r.sent {
		return nil, ErrAlreadySent
	}
	r.sent = true

	return r.client.do(ctx, r)
}

// encodeBody returns the JSON payload, or nil when no body is set.
func (r *Request) encodeBody() ([]byte, error) {
	if r.body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(r.body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return payload, nil
}

// queryValues renders parameters for the wire. Slices and arrays expand to
// repeated keys, everything else uses its default string form.
func (r *Request) queryValues() url.Values {
	values := make(url.Values, len(r.parameters))
	for key, value := range r.parameters {
		if value == nil {
			continue
		}
		rv := reflect.ValueOf(value)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := 0; i < rv.Len(); i++ {
				values.Add(key, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		values.Add(key, fmt.Sprint(value))
	}
	return values
}
