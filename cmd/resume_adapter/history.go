package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/db"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation runs from the audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DatabaseURL == "" {
				return fmt.Errorf("no database configured: set database_url or DATABASE_URL")
			}

			ctx := cmd.Context()
			database, err := db.Connect(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			runs, err := database.ListRecentRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tSTATUS\tPROVIDER\tMODEL\tLANGUAGE\tDEGRADED\tCACHED\tDURATION")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%t\t%s\n",
					run.CreatedAt.Local().Format(time.DateTime),
					run.Status,
					run.Provider,
					run.Model,
					run.Language,
					run.Degraded,
					run.CacheHit,
					time.Duration(run.DurationMs)*time.Millisecond,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", db.DefaultListLimit, "Number of runs to show")
	return cmd
}
