package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/diffing"
)

func newDiffCmd(_ *app) *cobra.Command {
	var (
		opts  = diffing.DefaultOptions()
		stats bool
	)
	cmd := &cobra.Command{
		Use:   "diff <original> <revised>",
		Short: "Print a unified diff between two resumes (.pdf, .docx or text)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := readTextOrDocument(args[0])
			if err != nil {
				return err
			}
			revised, err := readTextOrDocument(args[1])
			if err != nil {
				return err
			}

			unified := diffing.Unified(original, revised, opts)
			if stats {
				added, removed := diffing.Stats(unified)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "+%d -%d\n", added, removed)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), unified)
			return err
		},
	}
	cmd.Flags().IntVarP(&opts.Context, "context", "U", diffing.DefaultContext, "Lines of context")
	cmd.Flags().StringVar(&opts.FromLabel, "from-label", diffing.DefaultFromLabel, "Label of the original file")
	cmd.Flags().StringVar(&opts.ToLabel, "to-label", diffing.DefaultToLabel, "Label of the revised file")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print only added and removed line counts")
	return cmd
}
