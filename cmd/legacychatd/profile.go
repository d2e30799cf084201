package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	params := &struct {
		Name     string
		Relation string
	}{}

	cmd := &cobra.Command{
		Use:   "profile [memories-file]",
		Short: "Draft a personality profile from free-text memories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
				if err != nil {
					return errors.Wrapf(err, "failed to read memories file")
				}
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrapf(err, "failed to read memories from stdin")
				}
			}

			app, _, err := newApp(ctx, "")
			if err != nil {
				return err
			}
			defer app.Close()

			profile := app.GenerateProfile(ctx, params.Name, params.Relation, string(raw))
			fmt.Fprintln(cmd.OutOrStdout(), profile)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "Name of the person")
	cmd.Flags().StringVar(&params.Relation, "relation", "", "Relation to the user, e.g. grandmother")
	return cmd
}
