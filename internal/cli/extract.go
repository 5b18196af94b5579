package cli

import (
	"fmt"
	"io"

	"github.com/wesleyorama2/diaries/internal/http"
	"github.com/wesleyorama2/diaries/pkg/jsonpath"
)

// printExtract prints the values selected by --extract. One path prints the
// bare value; several print one "path: value" line each, in flag order. A
// response without a JSON payload fails with its MissingBodyError.
func (a *app) printExtract(w io.Writer, resp *http.Response) error {
	if _, err := resp.Body(); err != nil {
		return err
	}

	if len(a.extract) == 1 {
		value, err := jsonpath.Extract(resp.Raw(), a.extract[0])
		if err != nil {
			return fmt.Errorf("extract %s: %w", a.extract[0], err)
		}
		fmt.Fprintln(w, value)
		return nil
	}

	paths := make(map[string]string, len(a.extract))
	for _, path := range a.extract {
		paths[path] = path
	}

	values, err := jsonpath.ExtractMultiple(resp.Raw(), paths)
	for _, path := range a.extract {
		if value, ok := values[path]; ok {
			fmt.Fprintf(w, "%s: %s\n", path, value)
		}
	}
	return err
}
