package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yatube/internal/config"
	"yatube/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "yatube",
	Short: "Yatube - blog platform with groups, comments and author subscriptions",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		logger.SetDefault(logger.New(os.Stdout, cfg.LogLevel))
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, groupCmd, userCmd)
}
