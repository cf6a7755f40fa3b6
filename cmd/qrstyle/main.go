package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/qrstyle/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// env holds QRSTYLE_* settings; flags left unset fall back to it.
var env config.Env

var rootCmd = &cobra.Command{
	Use:   "qrstyle",
	Short: "Render styled QR codes with gradients, transparency and logos",
	Long: `qrstyle renders QR codes in custom colors, optionally with a gradient,
a transparent background and a centred logo, and can serve the same
operations as MCP tools over stdio.

Environment variables:
  QRSTYLE_LOG_LEVEL=debug    Log level (default: info)
  QRSTYLE_MODULE_SIZE=10     Default pixels per module
  QRSTYLE_BACKEND=skip2      Default encoder backend
  QRSTYLE_PARALLEL=true      Recolor rows in parallel`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if env, err = config.FromEnv(os.Getenv); err != nil {
			return err
		}
		// stdout is reserved for command output and the MCP protocol
		return config.SetupLogging(env.LogLevel, os.Stderr)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
