package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <model-dir>",
		Short: "Resolve an explicit model directory",
		Long: "Ensure the given directory holds the extracted model files, downloading " +
			"the packaged archive if needed. The directory's base name must be a known " +
			"model identifier unless its .zip sibling already exists.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
