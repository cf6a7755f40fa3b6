package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/qrstyle/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: `Run the MCP server. It communicates via JSON-RPC over stdin/stdout;
configure it in your MCP client (e.g., Claude Desktop).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logrus.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("starting qrstyle MCP server")

	opts := []server.Option{
		server.WithVersion(Version),
		server.WithParallel(env.Parallel),
	}
	if env.Backend != "" {
		opts = append(opts, server.WithBackend(env.Backend))
	}
	if env.ModuleSize > 0 {
		opts = append(opts, server.WithModuleSize(env.ModuleSize))
	}

	return server.New(opts...).Run()
}
