package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/memegle/cnstd/internal/config"
	"github.com/memegle/cnstd/internal/download"
	"github.com/memegle/cnstd/internal/env"
	"github.com/memegle/cnstd/internal/logger"
	"github.com/memegle/cnstd/internal/model"
)

// app holds the state shared by all subcommands, assembled once in the
// root command's PersistentPreRunE.
type app struct {
	log      *slog.Logger
	cfg      *config.Config
	dataDir  string
	registry *model.Registry
	resolver *model.Resolver
	client   *download.Client
}

func newRootCmd() *cobra.Command {
	var (
		flagConfigPath string
		flagDataDir    string
		flagLogFile    string
		flagVerbose    bool
	)

	a := &app{}

	cmd := &cobra.Command{
		Use:     "cnstd",
		Short:   "Manage cnstd scene-text detection models",
		Long:    "Resolve, download and manage the packaged models used by the cnstd scene-text detection toolkit.",
		Version: model.ModelVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			a.log = logger.New(env.FromEnv(),
				logger.WithLevel(level),
				logger.WithLogToFile(flagLogFile != ""),
				logger.WithLogFile(flagLogFile),
			)

			cfg, err := loadConfig(cmd, flagConfigPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			a.dataDir = flagDataDir
			if a.dataDir == "" {
				a.dataDir = config.ResolveDataDir(cfg)
			}

			a.client = download.New(a.log)
			a.registry = model.RegistryFromConfig(cfg)
			a.resolver = model.NewResolver(a.registry, a.client, a.log)

			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config",
		filepath.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override the model data root")
	cmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Also write logs to this rotating file")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(newModelsCmd(a))
	cmd.AddCommand(newResolveCmd(a))
	cmd.AddCommand(newSyncCmd(a))

	return cmd
}

// loadConfig loads the config file, tolerating a missing file when the
// path was not set explicitly.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if cmd.Root().PersistentFlags().Changed("config") {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return &config.Config{Version: "1"}, nil
	}

	return config.Load(path)
}
