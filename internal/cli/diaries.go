package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/diaries/internal/diaries"
	"github.com/wesleyorama2/diaries/pkg/jsonpath"
)

func newListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every diary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.api.GetAll(cmd.Context())
			if err != nil {
				return err
			}

			idsOnly, _ := cmd.Flags().GetBool("ids")
			if idsOnly && resp.IsSuccess() && resp.HasBody() {
				ids, err := jsonpath.ExtractAll(resp.Raw(), "$[*].id")
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			return a.render(cmd.OutOrStdout(), resp, diaries.ValidateDiaries)
		},
	}

	cmd.Flags().Bool("ids", false, "print only the id of each diary")
	return cmd
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one diary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.api.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), resp, diaries.ValidateDiary)
		},
	}
}

func newAddCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a diary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")

			resp, err := a.api.Add(cmd.Context(), title, description)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), resp, diaries.ValidateDiary)
		},
	}

	cmd.Flags().String("title", "", "diary title")
	cmd.Flags().String("description", "", "diary description")
	return cmd
}

func newUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the title and description of a diary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")

			resp, err := a.api.Update(cmd.Context(), args[0], title, description)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), resp, diaries.ValidateDiary)
		},
	}

	cmd.Flags().String("title", "", "new diary title")
	cmd.Flags().String("description", "", "new diary description")
	return cmd
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"delete", "rm"},
		Short:   "Remove a diary",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.api.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), resp, nil)
		},
	}
}
