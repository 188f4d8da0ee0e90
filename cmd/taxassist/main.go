// Package main provides the taxassist CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LakshmirajSunilSawant/tax-assistant/cmd/taxassist/ui"
	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
	"github.com/LakshmirajSunilSawant/tax-assistant/internal/config"
	"github.com/LakshmirajSunilSawant/tax-assistant/internal/logging"
)

var (
	// Global flags
	verbose    bool
	apiBaseURL string
	userID     string
	configPath string

	// Loaded configuration
	cfg *config.Config

	// Logger for one-shot commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "taxassist",
	Short: "taxassist - terminal client for the Tax Filing Assistant",
	Long: `taxassist is a terminal chat client for the Tax Filing Assistant
backend. It helps identify the correct ITR form, discover deductions,
and cross-check tax data against Form 26AS / AIS.

Run without arguments to start the interactive chat. Conversations are
session-only: nothing is stored locally once the view closes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if apiBaseURL != "" {
			cfg.API.BaseURL = apiBaseURL
		}
		if userID != "" {
			cfg.User.ID = userID
		}

		// The interactive view builds its own file logger; stdout
		// belongs to bubbletea there.
		if cmd.CalledAs() == "taxassist" {
			return nil
		}

		logger, err = logging.NewCLILogger(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.DefaultStyles()
		if cfg.UI.Theme == "dark" {
			styles = ui.NewStyles(ui.DarkTheme())
		}

		var chatLogger *zap.Logger
		if cfg.Logging.Debug {
			var err error
			chatLogger, err = logging.NewFileLogger(cfg.LogFile())
			if err != nil {
				return err
			}
			defer func() { _ = chatLogger.Sync() }()
		}

		return runInteractiveChat(newAPIClient(chatLogger), cfg.User.ID, cfg.GetTimeout(), styles, chatLogger)
	},
}

// newAPIClient builds the backend client from the loaded config.
func newAPIClient(l *zap.Logger) *api.Client {
	return api.NewClientWithConfig(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.GetTimeout(),
		Logger:  l,
	})
}

// commandTimeout bounds one-shot RPC commands.
func commandTimeout() time.Duration {
	return cfg.GetTimeout()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "", "backend base URL (overrides config and TAXASSIST_API_URL)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "user id sent with chat messages (default anonymous)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")

	rootCmd.AddCommand(itrCmd)
	rootCmd.AddCommand(deductionsCmd)
	rootCmd.AddCommand(validationCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
