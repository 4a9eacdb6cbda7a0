package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tracker-mcp/pkg/service/bootstrap"
	"tracker-mcp/pkg/service/config"
	"tracker-mcp/pkg/service/transport"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"
	// GitCommit is the git commit SHA at build time
	GitCommit = "unknown"
	// BuildTime is the time of the build
	BuildTime = "unknown"
)

var (
	envFile       string
	transportType string
	httpAddr      string
	httpPort      int
	logLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "tracker-mcp",
	Short: "MCP gateway for an issue tracker's REST API",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long:  `Serve the issue tracker tool catalog over the configured MCP transport (stdio, http, or sse).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracker-mcp %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
	},
}

func init() {
	serveCmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file with configuration")
	serveCmd.Flags().StringVar(&transportType, "transport", "", "Transport type (stdio, http, sse)")
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address")
	serveCmd.Flags().IntVar(&httpPort, "http-port", 0, "HTTP listen port")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func runServer() error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Console logging goes to stderr: stdout belongs to the stdio transport.
	setupLogging(cfg.LogLevel)
	slogLogger := createSlogLogger(cfg.LogLevel)

	log.Info().
		Str("version", Version).
		Str("transport", cfg.TransportType).
		Str("project", cfg.ProjectKey).
		Msg("Starting issue tracker MCP server")

	bootstrapper := bootstrap.NewBootstrapper(slogLogger, cfg)
	mcpServer := bootstrapper.CreateMCPServer()
	if err := bootstrapper.RegisterComponents(mcpServer); err != nil {
		return fmt.Errorf("failed to register components: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := transport.NewManager(slogLogger, transport.Type(cfg.TransportType),
		fmt.Sprintf("%s:%d", cfg.HTTPAddr, cfg.HTTPPort))
	return manager.Start(ctx, mcpServer)
}

func applyFlagOverrides(cfg *config.Config) {
	if transportType != "" {
		cfg.TransportType = transportType
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if httpPort > 0 {
		cfg.HTTPPort = httpPort
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

func setupLogging(level string) {
	zerolog.SetGlobalLevel(parseZerologLevel(level))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func parseZerologLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// createSlogLogger creates a structured logger for dependency injection
func createSlogLogger(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseSlogLevel(level),
	})
	return slog.New(handler)
}

func parseSlogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
