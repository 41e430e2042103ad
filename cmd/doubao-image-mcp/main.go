package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/doubao-image-mcp/internal/config"
	"github.com/ironsheep/doubao-image-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const longHelp = `doubao-image-mcp - MCP server for Doubao image generation

This server communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).

Environment variables:
  DOUBAO_KEY                    API key (required, checked on every call)
  DOUBAO_ENDPOINT               Override the image generations URL
  DOUBAO_MODEL                  Model used when a call does not name one
  DOUBAO_REFERENCE_MAX_SIDE     Longest side for local reference images (0 = no limit)
  DOUBAO_IMAGE_MCP_LOG_LEVEL    Set to "debug" to enable debug logging`

func versionText() string {
	return fmt.Sprintf("doubao-image-mcp %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "doubao-image-mcp",
		Short:         "MCP server for Doubao image generation",
		Long:          longHelp,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	cmd.SetVersionTemplate(versionText())

	// A subcommand also enables cobra's "help" command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	})

	return cmd
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if cfg.Debug {
		log.Printf("Doubao Image MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Println("Doubao Image MCP server running on stdio")

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
