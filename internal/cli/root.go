package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andy/invoiceflow/internal/app"
	"github.com/andy/invoiceflow/internal/common"
	"github.com/andy/invoiceflow/internal/config"
)

var (
	appInstance *app.App
	logFile     *os.File
	cfgFile     string

	// settings overlays flags and INVOICEFLOW_* environment variables onto the config file
	settings = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "invoiceflow",
	Short: "Review, approve and pay vendor invoices from the terminal",
	Long: `Invoiceflow is an invoice review dashboard.

Every run starts a fresh session seeded with invoices and payment methods.
Nothing is written back to disk; decisions last until the program exits.

By default, running invoiceflow without arguments launches the interactive TUI.
Use subcommands for one-shot CLI operations.`,
	SilenceUsage: true,
	RunE:         launchTUI,
}

// ExecuteContext runs the root command with ctx and discards the session afterwards
func ExecuteContext(ctx context.Context) error {
	defer closeSession()
	return rootCmd.ExecuteContext(ctx)
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization cycle
	// (initApp -> isInteractive -> rootCmd).
	rootCmd.PersistentPreRunE = initApp

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/invoiceflow/config.yaml)")
	rootCmd.PersistentFlags().String("seed", "", "seed file with invoices and payment methods (default: built-in)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file")

	// Bind flags to viper
	_ = settings.BindPFlag("session.seed_file", rootCmd.PersistentFlags().Lookup("seed"))
	_ = settings.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = settings.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = settings.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))

	// Environment variables
	settings.SetEnvPrefix("INVOICEFLOW")
	settings.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	settings.AutomaticEnv()

	// Add all subcommands
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
}

// initApp loads config, sets up logging and seeds the session
func initApp(cmd *cobra.Command, _ []string) error {
	if appInstance != nil {
		return nil
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if err := setupLogging(cfg, isInteractive(cmd)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	a, err := app.NewWithConfig(cmd.Context(), cfg)
	if err != nil {
		return common.NewUserError("Could not start session", err)
	}

	common.LogDebug("session started", common.Fields{
		"seed_file":       cfg.Session.SeedFile,
		"hold_unverified": cfg.Review.HoldUnverified,
	})

	SetApp(a)
	return nil
}

// resolveConfig loads the config file and applies flag and environment overrides
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides copies flag and environment values that were actually set onto cfg
func applyOverrides(cfg *config.Config) error {
	if settings.IsSet("session.seed_file") {
		cfg.Session.SeedFile = settings.GetString("session.seed_file")
	}
	if settings.IsSet("review.hold_unverified") {
		cfg.Review.HoldUnverified = settings.GetBool("review.hold_unverified")
	}
	if settings.IsSet("dashboard.recent_count") {
		cfg.Dashboard.RecentCount = settings.GetInt("dashboard.recent_count")
	}
	if settings.IsSet("logging.level") {
		cfg.Logging.Level = settings.GetString("logging.level")
	}
	if settings.IsSet("logging.format") {
		cfg.Logging.Format = settings.GetString("logging.format")
	}
	if settings.IsSet("logging.file") {
		cfg.Logging.File = settings.GetString("logging.file")
	}
	return cfg.Validate()
}

// setupLogging routes logs to the configured file. Without one, CLI commands log
// to stderr and the TUI discards logs so they never tear its screen.
func setupLogging(cfg *config.Config, interactive bool) error {
	level, err := common.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		w = f
	case interactive:
		w = io.Discard
	}

	return common.SetupLogger(level, cfg.Logging.Format, w)
}

func isInteractive(cmd *cobra.Command) bool {
	return (cmd == rootCmd || cmd == tuiCmd) && stdoutIsTerminal()
}

func closeSession() {
	if appInstance != nil {
		appInstance.Close()
		appInstance = nil
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
