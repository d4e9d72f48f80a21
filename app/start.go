package app

import (
	"github.com/spf13/cobra"

	"github.com/GoUserManagement/UserManagement/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(apiCmd, webCmd)
}

var (
	apiCmd = &cobra.Command{
		Use:   "api",
		Short: "Start the REST API",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig(true)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.NewAPI(cmd.Context(), &cfg)
			if err != nil {
				return err
			}

			return d.Run()
		},
	}

	webCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web front-end",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig(true)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.NewWeb(cmd.Context(), &cfg)
			if err != nil {
				return err
			}

			return d.Run()
		},
	}
)
