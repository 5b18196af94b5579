package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/diaries/internal/http"
	"github.com/wesleyorama2/diaries/internal/latency"
)

func newLatencyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latency",
		Short: "Sample the response time of the list or a single diary",
		Long: `latency sends GET requests one after the other and prints a summary of
the observed status codes and latency percentiles. Without --id the
collection is sampled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			id, _ := cmd.Flags().GetString("id")

			send := func(ctx context.Context) (*http.Response, error) {
				return a.api.GetAll(ctx)
			}
			if id != "" {
				send = func(ctx context.Context) (*http.Response, error) {
					return a.api.Get(ctx, id)
				}
			}

			report, err := latency.Run(cmd.Context(), count, send)
			if report != nil {
				fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatLatency(report))
			}
			return err
		},
	}

	cmd.Flags().IntP("count", "n", 10, "number of requests to send")
	cmd.Flags().String("id", "", "sample GET /diaries/{id} instead of the list")
	return cmd
}
