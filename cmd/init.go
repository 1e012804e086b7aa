package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/winter-gallery/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gallery configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the gallery and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
