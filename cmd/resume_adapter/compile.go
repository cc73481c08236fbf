package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/directives"
	"github.com/jonathan/resume-adapter/internal/types"
)

func newCompileCmd(a *app) *cobra.Command {
	var (
		flags    directiveFlags
		language string
	)
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the compiled directive block that ends the generation prompt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if language == "" {
				language = a.cfg.Language
			}
			lang, err := types.ParseLanguage(language)
			if err != nil {
				return err
			}
			set, err := flags.set()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), directives.Compile(set, flags.instructions, lang))
			return err
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "Output language")
	flags.register(cmd)
	return cmd
}
