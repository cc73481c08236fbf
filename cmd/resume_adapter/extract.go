package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/observability"
)

func newExtractCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "extract <resume.pdf|resume.docx>",
		Short: "Print the plain text extracted from a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			if a.cfg.Verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintDocument(doc)
			}

			text := doc.Text() + "\n"
			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(out, []byte(text), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			a.logger.Info("wrote extracted text", "path", out, "lines", len(doc.Lines))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the text to this file instead of stdout")
	return cmd
}
