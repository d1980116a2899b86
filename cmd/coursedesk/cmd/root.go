// Package cmd provides the CLI commands for coursedesk.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/coursedesk/coursedesk/internal/activity"
	"github.com/coursedesk/coursedesk/internal/config"
	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/internal/session"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

// Persistent flag values.
var (
	cfgFile       string
	apiURL        string
	sessionFile   string
	outputFormat  string
	verbose       bool
	traceRequests bool
	assumeYes     bool
)

// Per-invocation application state, assembled in initApp.
var (
	cfg            *config.Config
	logger         *slog.Logger
	sessions       *session.Manager
	client         *courseapi.Client
	activityLog    *activity.Store
	tracerProvider *sdktrace.TracerProvider
)

// routeKey is the annotation key commands use to declare their view
// path for the route guard. Commands without it resolve to the default
// protected view.
const routeKey = "route"

// routeAnnotation builds the annotation map declaring a command's path.
func routeAnnotation(path string) map[string]string {
	return map[string]string{routeKey: path}
}

var rootCmd = &cobra.Command{
	Use:   "coursedesk",
	Short: "coursedesk - course platform admin tool",
	Long: `coursedesk is the admin terminal client for the course platform.

It manages categories, courses, modules, videos, products, and
enrollments, and shows the platform dashboards. All data lives on the
platform API server; coursedesk holds only your login session and a
local log of what you ran.

Quick start:
  1. Log in: coursedesk login --email admin@example.com
  2. Check the dashboard: coursedesk dashboard
  3. List a resource: coursedesk courses list

Configuration:
  Config is loaded from coursedesk.yaml in the current directory,
  $HOME/.coursedesk/, or /etc/coursedesk/.

  Environment variables can override config values with the COURSEDESK_
  prefix. Example: COURSEDESK_API_URL=https://api.example.com/api`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRun: shutdownApp,
}

// Execute runs the root command with the given base context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, friendly(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./coursedesk.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "platform API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session", "", "path to the session file (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceRequests, "trace", false, "emit a trace span per API request to stderr")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
}

func initConfig() {
	config.InitViper(cfgFile)
}

// initApp loads config, builds the session manager, runs the route
// guard for the invoked command, and wires the API client. It runs
// before every command.
func initApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		return err
	}

	// Flag overrides beat config and environment.
	if apiURL != "" {
		cfg.API.URL = apiURL
	}
	if sessionFile != "" {
		cfg.Session.File = sessionFile
	}
	if outputFormat == "" {
		outputFormat = cfg.Output
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if used := config.ConfigFileUsed(); used != "" {
		logger.Debug("config file loaded", "path", used)
	}

	store := session.NewFileStore(cfg.Session.File, logger)
	sessions = session.NewManager(store, logger)

	// Route guard: restore the session, then admit or redirect. Nothing
	// protected runs while the session is still loading.
	if _, err := guard.New(sessions).Admit(commandRoute(cmd)); err != nil {
		if errors.Is(err, guard.ErrLoginRequired) {
			return fmt.Errorf("not logged in: run \"coursedesk login\" first")
		}
		return err
	}

	clientOpts := []courseapi.Option{
		courseapi.WithTokenSource(sessions),
		courseapi.WithLogger(logger),
	}

	if timeout, perr := time.ParseDuration(cfg.API.Timeout); perr == nil {
		clientOpts = append(clientOpts, courseapi.WithTimeout(timeout))
	}

	if traceRequests {
		exporter, terr := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if terr != nil {
			return fmt.Errorf("failed to create trace exporter: %w", terr)
		}
		tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		clientOpts = append(clientOpts, courseapi.WithTracerProvider(tracerProvider))
	}

	// The activity log is best-effort: a broken local database must not
	// block work against the server.
	retention := time.Duration(cfg.Activity.RetentionDays) * 24 * time.Hour
	activityLog, err = activity.Open(cfg.Activity.File, retention, logger)
	if err != nil {
		logger.Warn("activity log unavailable", "error", err)
		activityLog = nil
	} else {
		clientOpts = append(clientOpts, courseapi.WithResultHook(recordActivity))
	}

	client = courseapi.NewClient(cfg.API.URL, clientOpts...)
	return nil
}

// shutdownApp flushes the tracer and closes the activity log.
func shutdownApp(cmd *cobra.Command, args []string) {
	if tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Warn("trace flush failed", "error", err)
		}
	}
	if activityLog != nil {
		if err := activityLog.Close(); err != nil {
			logger.Warn("activity log close failed", "error", err)
		}
	}
}

// recordActivity writes one API result to the local activity log.
func recordActivity(res courseapi.Result) {
	outcome := "ok"
	detail := ""
	if res.Err != nil {
		outcome = "error"
		detail = res.Err.Error()
	}
	entry := activity.Entry{
		RequestID: res.RequestID,
		Op:        res.Op,
		Method:    res.Method,
		Path:      res.Path,
		Status:    res.Status,
		Outcome:   outcome,
		Detail:    detail,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := activityLog.Record(ctx, entry); err != nil {
		logger.Debug("activity record failed", "error", err)
	}
}

// commandRoute returns the view path a command is annotated with,
// walking up to parent commands. Help and completion are always
// public; unannotated commands fall through to the default protected
// view.
func commandRoute(cmd *cobra.Command) string {
	switch cmd.Name() {
	case "help", "completion", "version":
		return guard.PathLogin
	}
	for c := cmd; c != nil; c = c.Parent() {
		if path, ok := c.Annotations[routeKey]; ok {
			return path
		}
	}
	return guard.PathDashboard
}

// parseLogLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for unrecognized values.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// friendly rewrites common errors into actionable messages.
func friendly(err error) string {
	switch {
	case errors.Is(err, courseapi.ErrUnauthorized):
		return fmt.Sprintf("%v\nYour session may have expired: run \"coursedesk login\".", err)
	case errors.Is(err, courseapi.ErrServerUnreachable):
		return fmt.Sprintf("%v\nCheck the API URL (--api-url or COURSEDESK_API_URL) and that the server is up.", err)
	default:
		return err.Error()
	}
}
