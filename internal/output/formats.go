package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/diaries/internal/http"
	"github.com/wesleyorama2/diaries/internal/latency"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(name)); format {
	case FormatText, FormatJSON, FormatYAML:
		return format, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or yaml)", name)
	}
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatRequest(req *http.Request) string
	FormatResponse(resp *http.Response) string
	FormatLatency(report *latency.Report) string
}

// RequestData represents the structured data of an HTTP request
type RequestData struct {
	Method     string         `json:"method" yaml:"method"`
	URL        string         `json:"url" yaml:"url"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Body       map[string]any `json:"body,omitempty" yaml:"body,omitempty"`
	Timestamp  string         `json:"timestamp" yaml:"timestamp"`
}

// TimingData represents detailed timing information for an HTTP request
type TimingData struct {
	DNSLookup     int64 `json:"dnsLookupMs,omitempty" yaml:"dnsLookupMs,omitempty"`
	TCPConnection int64 `json:"tcpConnectionMs,omitempty" yaml:"tcpConnectionMs,omitempty"`
	TLSHandshake  int64 `json:"tlsHandshakeMs,omitempty" yaml:"tlsHandshakeMs,omitempty"`
	Server        int64 `json:"serverMs,omitempty" yaml:"serverMs,omitempty"`
	Total         int64 `json:"totalMs" yaml:"totalMs"`
}

// ResponseData represents the structured data of an HTTP response
type ResponseData struct {
	StatusCode int               `json:"statusCode" yaml:"statusCode"`
	Status     string            `json:"status" yaml:"status"`
	Reason     string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Text       string            `json:"text,omitempty" yaml:"text,omitempty"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body       any               `json:"body,omitempty" yaml:"body,omitempty"`
	Timing     TimingData        `json:"timing" yaml:"timing"`
	Timestamp  string            `json:"timestamp" yaml:"timestamp"`
}

// LatencyData is a latency report with durations in milliseconds.
type LatencyData struct {
	Requests     int64            `json:"requests" yaml:"requests"`
	Failures     int64            `json:"failures" yaml:"failures"`
	StatusCounts map[string]int64 `json:"statusCounts" yaml:"statusCounts"`
	MinMs        float64          `json:"minMs" yaml:"minMs"`
	MeanMs       float64          `json:"meanMs" yaml:"meanMs"`
	P50Ms        float64          `json:"p50Ms" yaml:"p50Ms"`
	P90Ms        float64          `json:"p90Ms" yaml:"p90Ms"`
	P95Ms        float64          `json:"p95Ms" yaml:"p95Ms"`
	P99Ms        float64          `json:"p99Ms" yaml:"p99Ms"`
	MaxMs        float64          `json:"maxMs" yaml:"maxMs"`
	ElapsedMs    float64          `json:"elapsedMs" yaml:"elapsedMs"`
}

func newRequestData(req *http.Request) RequestData {
	return RequestData{
		Method:     req.Method().String(),
		URL:        req.URL(),
		Parameters: req.Parameters(),
		Body:       req.BodyFields(),
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

// newResponseData includes headers only when verbose.
func newResponseData(resp *http.Response, verbose bool) ResponseData {
	data := ResponseData{
		StatusCode: resp.StatusCode,
		Status:     statusLine(resp),
		Reason:     resp.Reason,
		Text:       resp.Text,
		Timing: TimingData{
			DNSLookup:     resp.GetDNSLookupTimeMillis(),
			TCPConnection: resp.GetTCPConnectTimeMillis(),
			TLSHandshake:  resp.GetTLSHandshakeTimeMillis(),
			Server:        resp.GetServerTimeMillis(),
			Total:         resp.GetTotalTimeMillis(),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if body, err := resp.Body(); err == nil {
		data.Body = body
		// the text is the same payload again
		data.Text = ""
	}

	if verbose && len(resp.Headers) > 0 {
		data.Headers = make(map[string]string, len(resp.Headers))
		for key, values := range resp.Headers {
			data.Headers[key] = strings.Join(values, ", ")
		}
	}

	return data
}

func newLatencyData(report *latency.Report) LatencyData {
	counts := make(map[string]int64, len(report.StatusCounts))
	for code, n := range report.StatusCounts {
		counts[fmt.Sprint(code)] = n
	}
	return LatencyData{
		Requests:     report.Requests,
		Failures:     report.Failures,
		StatusCounts: counts,
		MinMs:        millis(report.Min),
		MeanMs:       millis(report.Mean),
		P50Ms:        millis(report.P50),
		P90Ms:        millis(report.P90),
		P95Ms:        millis(report.P95),
		P99Ms:        millis(report.P99),
		MaxMs:        millis(report.Max),
		ElapsedMs:    millis(report.Elapsed),
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Verbose bool
	Pretty  bool
}

// FormatRequest formats a request as JSON
func (f *JSONFormatter) FormatRequest(req *http.Request) string {
	return f.marshal("request", newRequestData(req))
}

// FormatResponse formats a response as JSON
func (f *JSONFormatter) FormatResponse(resp *http.Response) string {
	return f.marshal("response", newResponseData(resp, f.Verbose))
}

// FormatLatency formats a latency report as JSON
func (f *JSONFormatter) FormatLatency(report *latency.Report) string {
	return f.marshal("latency report", newLatencyData(report))
}

func (f *JSONFormatter) marshal(what string, v any) string {
	var output []byte
	var err error
	if f.Pretty {
		output, err = json.MarshalIndent(v, "", "  ")
	} else {
		output, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Sprintf(`{"error":"Failed to marshal %s: %s"}`, what, err) + "\n"
	}

	return string(output) + "\n"
}

// YAMLFormatter formats output as YAML documents
type YAMLFormatter struct {
	Verbose bool
}

// FormatRequest formats a request as YAML
func (f *YAMLFormatter) FormatRequest(req *http.Request) string {
	return f.marshal("request", newRequestData(req))
}

// FormatResponse formats a response as YAML
func (f *YAMLFormatter) FormatResponse(resp *http.Response) string {
	return f.marshal("response", newResponseData(resp, f.Verbose))
}

// FormatLatency formats a latency report as YAML
func (f *YAMLFormatter) FormatLatency(report *latency.Report) string {
	return f.marshal("latency report", newLatencyData(report))
}

func (f *YAMLFormatter) marshal(what string, v any) string {
	output, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("---\nerror: Failed to marshal %s: %s\n", what, err)
	}
	return "---\n" + string(output)
}

// GetFormatter returns the formatter for the given format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Verbose: verbose, Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{Verbose: verbose}
	default:
		return NewFormatter(verbose, noColor)
	}
}

func statusLine(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, statusText(resp.StatusCode))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
