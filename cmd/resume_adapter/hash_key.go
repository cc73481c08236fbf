package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/access"
)

func newHashKeyCmd(_ *app) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "hash-key",
		Short: "Hash an access key for the access_key_hash config field",
		Long:  "Hash an access key with bcrypt. The key is read from --key or from the first line of stdin.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("no key given: use --key or pipe it on stdin")
				}
				key = strings.TrimRight(line, "\r\n")
			}

			keyConfig, err := access.NewKeyConfig()
			if err != nil {
				return err
			}
			hash, err := keyConfig.HashKey(key)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Access key to hash")
	return cmd
}
