package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFmtCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <storyboard>",
		Short: "Rewrite a storyboard file in canonical form",
		Long: "Loads and rewrites a storyboard file. Managed keys are normalized in " +
			"place, missing master keys are appended, and unknown lines pass " +
			"through untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFileLock(args[0], func() error {
				file, err := ctx.loadStoryboard(args[0])
				if err != nil {
					return err
				}
				if err := file.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rewrote %s\n", file.Path)
				return nil
			})
		},
	}
}
