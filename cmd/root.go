package cmd

import (
	"fmt"
	"os"

	"tag-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tag-manager",
	Short: "Tag Manager Service",
	Long: `Tag Manager keeps a TeddyCloud audio library, its content catalog, and
per-tag hardware state mutually consistent, and exposes linkage views over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Report through the application logger in console format, at
		// debug level so the dev encoder's ISO8601 timestamps are used.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Logger construction itself failed; plain stdout is all that is left.
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
