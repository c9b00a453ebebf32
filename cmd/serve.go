package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pvginkel/gitblit-mcp/internal/config"
	"github.com/pvginkel/gitblit-mcp/internal/gitblit"
	mcpserver "github.com/pvginkel/gitblit-mcp/internal/mcp"
	"github.com/pvginkel/gitblit-mcp/internal/validate"
)

var serveTransport string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Starts the Model Context Protocol (MCP) server, exposing Gitblit
repository browsing and search tools for AI agents. The default stdio
transport is for direct agent integration; the sse transport serves
HTTP clients on the configured host and port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := newLogger()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()

		client := gitblit.NewClient(cfg.APIBaseURL(), time.Duration(cfg.RequestTimeout)*time.Second)

		// The repository name cache pages through list_repos to learn
		// every name the backend knows.
		cache := validate.NewRepoCache(func(ctx context.Context, limit, offset int) ([]string, bool, error) {
			resp, err := client.ListRepos(ctx, "", limit, offset)
			if err != nil {
				return nil, false, err
			}
			names := make([]string, 0, len(resp.Repositories))
			for _, repo := range resp.Repositories {
				names = append(names, repo.Name)
			}
			return names, resp.LimitHit, nil
		}, time.Duration(cfg.RepoCacheTTL)*time.Second)

		validator := validate.NewValidator(cache)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		srv := mcpserver.NewServer(client, validator, logger)

		logger.Info("gitblit-mcp starting",
			zap.String("backend", cfg.APIBaseURL()),
			zap.String("transport", serveTransport),
		)

		switch serveTransport {
		case "stdio":
			return srv.ServeStdio()
		case "sse":
			return srv.ServeSSE(cfg.Host, cfg.Port)
		default:
			return fmt.Errorf("unknown transport %q: must be stdio or sse", serveTransport)
		}
	},
}

// newLogger constructs a console zap logger writing to stderr. Stdout must
// stay clean: the stdio transport uses it for MCP protocol messages.
func newLogger() (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.DisableCaller = true
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapCfg.Build()
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "MCP transport: stdio or sse")
	rootCmd.AddCommand(serveCmd)
}
