package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const jsonContentType = "application/json"

// TimingInfo contains timing information for a completed exchange.
type TimingInfo struct {
	DNSLookupTime    time.Duration
	TCPConnectTime   time.Duration
	TLSHandshakeTime time.Duration
	ServerTime       time.Duration
	TotalTime        time.Duration
}

// Response is the normalized result of a completed exchange.
// It does not change after construction. The exported fields are there for
// reading; callers must not modify them.
type Response struct {
	StatusCode int
	// Status is the status line as received, e.g. "404 Not Found".
	Status string

	// Reason and Text are only kept for non-2xx responses.
	Reason string
	Text   string

	Headers http.Header
	Timing  TimingInfo

	request   *Request
	raw       []byte
	body      any
	hasBody   bool
	decodeErr error
}

// newResponse builds a Response from the status, headers and payload of an
// exchange. status is the full status line, e.g. "404 Not Found".
func newResponse(req *Request, statusCode int, status string, headers http.Header, payload []byte, timing TimingInfo) *Response {
	resp := &Response{
		StatusCode: statusCode,
		Status:     status,
		Headers:    headers,
		Timing:     timing,
		request:    req,
	}

	if !isSuccess(statusCode) {
		resp.Reason = reasonPhrase(statusCode, status)
		resp.Text = string(payload)
	}

	if isJSON(headers.Get("Content-Type")) && len(bytes.TrimSpace(payload)) > 0 {
		var body any
		if err := json.Unmarshal(payload, &body); err != nil {
			resp.decodeErr = err
		} else if body != nil {
			// A bare JSON null counts as no payload.
			resp.raw = payload
			resp.body = body
			resp.hasBody = true
		}
	}

	return resp
}

// Body returns the decoded JSON payload. It fails with *MissingBodyError
// when the response carried no JSON payload.
func (r *Response) Body() (any, error) {
	if !r.hasBody {
		return nil, r.missingBody()
	}
	return r.body, nil
}

// DecodeBody unmarshals the JSON payload into v.
func (r *Response) DecodeBody(v any) error {
	if !r.hasBody {
		return r.missingBody()
	}
	return json.Unmarshal(r.raw, v)
}

// Raw returns the JSON payload bytes, or nil when there is none.
func (r *Response) Raw() []byte {
	return r.raw
}

// Request returns the request that produced this response.
func (r *Response) Request() *Request {
	return r.request
}

// HasBody reports whether a JSON payload was decoded.
func (r *Response) HasBody() bool {
	return r.hasBody
}

// GetHeader returns the value of the specified header
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return isSuccess(r.StatusCode)
}

// IsClientError returns true if the response status code is in the 4xx range
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// GetDNSLookupTimeMillis returns the DNS lookup time in milliseconds
func (r *Response) GetDNSLookupTimeMillis() int64 {
	return r.Timing.DNSLookupTime.Milliseconds()
}

// GetTCPConnectTimeMillis returns the TCP connection time in milliseconds
func (r *Response) GetTCPConnectTimeMillis() int64 {
	return r.Timing.TCPConnectTime.Milliseconds()
}

// GetTLSHandshakeTimeMillis returns the TLS handshake time in milliseconds
func (r *Response) GetTLSHandshakeTimeMillis() int64 {
	return r.Timing.TLSHandshakeTime.Milliseconds()
}

// GetServerTimeMillis returns the time the server took to answer in milliseconds
func (r *Response) GetServerTimeMillis() int64 {
	return r.Timing.ServerTime.Milliseconds()
}

// GetTotalTimeMillis returns the total request time in milliseconds
func (r *Response) GetTotalTimeMillis() int64 {
	return r.Timing.TotalTime.Milliseconds()
}

func (r *Response) missingBody() *MissingBodyError {
	err := &MissingBodyError{
		StatusCode: r.StatusCode,
		Reason:     r.Reason,
		Text:       r.Text,
		Cause:      r.decodeErr,
	}
	if r.request != nil {
		err.Target = r.request.target
		err.Method = r.request.method.String()
		err.Parameters = r.request.parameters
		err.Body = r.request.body
	}
	return err
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// isJSON checks the declared content type without trusting the payload.
func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), jsonContentType)
}

// reasonPhrase takes the phrase from the status line, falling back to the
// standard text for the code.
func reasonPhrase(statusCode int, status string) string {
	if _, phrase, ok := strings.Cut(status, " "); ok && phrase != "" {
		return phrase
	}
	return http.StatusText(statusCode)
}
