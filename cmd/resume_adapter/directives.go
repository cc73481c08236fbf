package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/directives"
	"github.com/jonathan/resume-adapter/internal/types"
)

func newDirectivesCmd(_ *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "directives",
		Short: "List the predefined directive labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := directives.LoadCatalog()
			if err != nil {
				return err
			}

			categories := []types.Category{types.CategoryStyle, types.CategoryFlair, types.CategoryAudience}
			if category != "" {
				c, err := types.ParseCategory(category)
				if err != nil {
					return err
				}
				categories = []types.Category{c}
			}

			out := cmd.OutOrStdout()
			for i, c := range categories {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s:\n", c)
				for _, label := range catalog.Options(c) {
					fmt.Fprintf(out, "  - %s\n", label)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list one category: style, flair or audience")
	return cmd
}
