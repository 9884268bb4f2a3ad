package main

import (
	"github.com/spf13/cobra"

	"github.com/memegle/cnstd/internal/config"
	"github.com/memegle/cnstd/internal/model"
)

func newSyncCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Resolve all models named in the config",
		Long: "Resolve every model listed under load.models. With --watch, keep running " +
			"and re-sync whenever the config file changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := model.NewManager(a.client, a.log)

			if err := manager.LoadModelsFromConfig(cmd.Context(), a.cfg, a.dataDir); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			configPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}

			watcher, err := config.NewWatcher(configPath, a.log, func(cfg *config.Config, err error) {
				if err != nil {
					a.log.Error("Failed to reload config", "error", err)
					return
				}

				if err := manager.LoadModelsFromConfig(cmd.Context(), cfg, a.dataDir); err != nil {
					a.log.Error("Failed to sync models from config", "error", err)
				}
			})
			if err != nil {
				return err
			}
			defer watcher.Close()

			a.log.Info("Watching config for changes", "path", configPath, "reloads", watcher.ReloadCount())
			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and re-sync on config changes")
	return cmd
}
