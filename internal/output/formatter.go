package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/wesleyorama2/diaries/internal/http"
	"github.com/wesleyorama2/diaries/internal/latency"
)

// Formatter is responsible for formatting HTTP requests and responses in text format
type Formatter struct {
	Verbose bool
	NoColor bool
	colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	colors := DefaultColorScheme()
	if noColor {
		colors = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		colors:  colors,
	}
}

// FormatRequest formats an HTTP request for display
func (f *Formatter) FormatRequest(req *http.Request) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.colors.Method.Sprint(req.Method()),
		f.colors.URL.Sprint(req.URL())))

	if body := req.BodyFields(); body != nil {
		buf.WriteString("  Body: ")
		jsonBody, err := json.Marshal(body)
		if err != nil {
			buf.WriteString(fmt.Sprintf("%v", body))
		} else {
			buf.WriteString(formatJSONString(string(jsonBody)))
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats an HTTP response for display
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		f.colors.status(resp.StatusCode).Sprint(statusLine(resp)),
		resp.GetTotalTimeMillis()))

	// Format detailed timing information if verbose
	if f.Verbose {
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:      %dms\n", resp.GetDNSLookupTimeMillis()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:  %dms\n", resp.GetTCPConnectTimeMillis()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:   %dms\n", resp.GetTLSHandshakeTimeMillis()))
		buf.WriteString(fmt.Sprintf("    Server:          %dms\n", resp.GetServerTimeMillis()))
		buf.WriteString(fmt.Sprintf("    Total:           %dms\n", resp.GetTotalTimeMillis()))

		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(resp.Headers) {
			for _, value := range resp.Headers[key] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n", f.colors.HeaderKey.Sprint(key), value))
			}
		}
	}

	if raw := resp.Raw(); raw != nil {
		buf.WriteString("  Body:\n  ")
		buf.WriteString(formatJSONString(string(raw)))
		buf.WriteString("\n")
	} else if resp.Text != "" {
		buf.WriteString("  Text:\n  ")
		buf.WriteString(formatJSONString(resp.Text))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatLatency formats a latency report for display
func (f *Formatter) FormatLatency(report *latency.Report) string {
	var buf strings.Builder

	icon := SuccessIcon(f.NoColor)
	if report.Failures > 0 {
		icon = ErrorIcon(f.NoColor)
	}

	buf.WriteString(fmt.Sprintf("%s LATENCY: %d requests, %d failed (%s)\n",
		icon, report.Requests, report.Failures, report.Elapsed.Round(time.Millisecond)))

	buf.WriteString("  Status codes:\n")
	for _, code := range report.Statuses() {
		buf.WriteString(fmt.Sprintf("    %s: %d\n",
			f.colors.status(code).Sprint(code), report.StatusCounts[code]))
	}

	buf.WriteString("  Latency:\n")
	rows := []struct {
		label string
		value float64
	}{
		{"min", millis(report.Min)},
		{"mean", millis(report.Mean)},
		{"p50", millis(report.P50)},
		{"p90", millis(report.P90)},
		{"p95", millis(report.P95)},
		{"p99", millis(report.P99)},
		{"max", millis(report.Max)},
	}
	for _, row := range rows {
		buf.WriteString(fmt.Sprintf("    %s %.2fms\n", f.colors.Label.Sprintf("%-5s", row.label), row.value))
	}

	return buf.String()
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return prettyJSON.String()
}

func statusText(code int) string {
	return stdhttp.StatusText(code)
}
