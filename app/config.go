package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoUserManagement/UserManagement/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as JSON, secrets omitted",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig(false)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := config.DumpConfigJSON(&cfg)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), out)

		return err
	},
}
