// Package cmd implements the command-line interface for newsurl. It provides
// the root command and subcommands for resolving Google News redirect URLs.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/newsurl/cmd/feed"
	"github.com/jonesrussell/newsurl/cmd/inspect"
	"github.com/jonesrussell/newsurl/cmd/resolve"
	"github.com/jonesrussell/newsurl/cmd/serve"
	"github.com/jonesrussell/newsurl/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the root command for the newsurl CLI.
	rootCmd = &cobra.Command{
		Use:   "newsurl",
		Short: "Resolve Google News redirect URLs to article URLs",
		Long: `newsurl resolves the redirect URLs found in Google News RSS feeds to the
publisher article URLs behind them, without driving a headless browser.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Parse flags early so the config file path and debug flag are known
	// before Viper is set up.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("newsurl version %s\n", config.DefaultVersion)
		},
	})

	rootCmd.AddCommand(resolve.Command())
	rootCmd.AddCommand(inspect.Command())
	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(feed.Command())
}

// initConfig sets up Viper and applies command-line overrides.
func initConfig() error {
	// Bind before Setup so the debug flag is visible to the development
	// logging adjustments.
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("bind debug flag: %w", err)
	}

	if err := config.Setup(cfgFile); err != nil {
		return err
	}

	// An explicit --log-level beats both the config and the debug escalation.
	if rootCmd.PersistentFlags().Changed("log-level") {
		viper.Set("logger.level", logLevel)
	}

	return nil
}
