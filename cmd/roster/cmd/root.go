// Package cmd provides the command structure for the roster CLI. Each
// lifecycle operation of the connector is exposed as one subcommand;
// inputs arrive as flags or JSON and outputs are emitted as JSON or
// YAML records on stdout.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/internal/config"
	"github.com/agentstation/roster/internal/store/airtable"
	"github.com/agentstation/roster/pkg/logging"
)

var (
	configFile   string
	outputFormat string
	verbose      bool
	quiet        bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Identity connector for tabular record stores",
	Long: `Roster adapts identity-governance lifecycle operations onto a tabular
backing record store.

It lists, reads, creates, updates, and retires accounts, reads
entitlements, discovers the account schema dynamically, and supports
incremental listing with an opaque cursor. Configure the store access
credential and base identifier through environment variables or a
configuration file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.roster.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format (json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".roster")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindConfigKeys()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	cfg := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}

	logging.Configure(cfg)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// bindConfigKeys explicitly binds the connector configuration
// environment variables to Viper.
func bindConfigKeys() {
	keys := []string{
		config.KeyAPIKey,
		config.KeyBaseID,
		config.KeyAPIURL,
		config.KeyStateful,
		config.KeyAccountsTable,
		config.KeyEntitlementsTable,
	}

	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// newConnector builds a connector from the loaded configuration.
// Missing required configuration fails here, before any operation runs.
func newConnector() (*roster.Connector, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var opts []airtable.Option
	if cfg.APIURL != "" {
		opts = append(opts, airtable.WithBaseURL(cfg.APIURL))
	}

	client, err := airtable.New(cfg.APIKey, cfg.BaseID, opts...)
	if err != nil {
		return nil, err
	}

	return roster.New(client,
		roster.WithTables(cfg.AccountsTable, cfg.EntitlementsTable),
		roster.WithStateful(cfg.Stateful),
		roster.WithBaseID(cfg.BaseID),
		roster.WithLogger(logging.Default()),
	), nil
}
