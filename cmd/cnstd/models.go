package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/memegle/cnstd/internal/model"
)

func newModelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage detection models",
		Long:  "List, download and remove the packaged detection models.",
	}

	cmd.AddCommand(newModelsListCmd(a))
	cmd.AddCommand(newModelsPullCmd(a))
	cmd.AddCommand(newModelsPathCmd(a))
	cmd.AddCommand(newModelsRemoveCmd(a))

	return cmd
}

// modelRow is the JSON shape of one `models list` entry.
type modelRow struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Resolved bool   `json:"resolved"`
	Path     string `json:"path"`
}

func newModelsListCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known models",
		Long:  "List the models of the built-in zoo plus any declared in the config, with their local resolution state.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []modelRow
			for _, name := range a.registry.Names() {
				entry, _ := a.registry.Lookup(name)
				dir := filepath.Join(a.dataDir, name)

				info, err := os.Stat(dir)
				rows = append(rows, modelRow{
					Name:     name,
					Version:  entry.Version,
					Resolved: err == nil && info.IsDir(),
					Path:     dir,
				})
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tRESOLVED\tPATH")
			for _, row := range rows {
				resolved := "no"
				if row.Resolved {
					resolved = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Name, row.Version, resolved, row.Path)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newModelsPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <name>",
		Short: "Download and unpack a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolver.Resolve(cmd.Context(), filepath.Join(a.dataDir, args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newModelsPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path <name>",
		Short: "Print the local directory of a resolved model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join(a.dataDir, args[0])
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return fmt.Errorf("%w: %s", model.ErrNotResolved, args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newModelsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a resolved model directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join(a.dataDir, args[0])
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", model.ErrNotResolved, args[0])
			}

			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("%w: %v", model.ErrStorage, err)
			}

			a.log.Info("Model removed", "model", args[0], "dir", dir)
			return nil
		},
	}
}
