package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/winter-gallery/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Winter Gallery exhibition server",
	Long: `gallery serves the Winter Gallery page: artwork information and curator
notes loaded from plain-text files, a live snowfall overlay and placeholder
music and narration controls.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
