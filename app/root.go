// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoUserManagement/UserManagement/internal/config"
	"github.com/GoUserManagement/UserManagement/internal/logger"
)

var (
	configPath string // path to the directory holding main.toml
	devMode    bool

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "usermanagement",
		Short: "UserManagement manages users, groups and permissions",
		Long: `UserManagement manages users, groups and permissions.
It runs as a REST API backed by a relational database and as a
server-rendered web front-end that talks to the API over HTTP.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "directory of main.toml")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "enable dev mode")
}

// loadConfig reads the config and, if withLogger is set, initializes the logger.
func loadConfig(withLogger bool) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	if !withLogger {
		return nil
	}

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
