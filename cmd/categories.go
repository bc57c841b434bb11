package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/trivia-proxy/internal/adapters/render/catalog"
	"github.com/bnema/trivia-proxy/internal/domain"
)

func newCategoriesCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the question bank's categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var categories []domain.Category
			err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching categories...", func(ctx context.Context) error {
				var fetchErr error
				categories, fetchErr = app.service.Categories(ctx)
				return fetchErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(categories)
			}

			rendered, err := catalog.RenderCategories(categories)
			if err != nil {
				return fmt.Errorf("render categories: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of the table")

	return cmd
}
