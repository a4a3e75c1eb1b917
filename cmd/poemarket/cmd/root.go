// Package cmd implements the poemarket CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/exile-tools/poemarket/internal/config"
	"github.com/exile-tools/poemarket/pkg/logger"
	domain "github.com/exile-tools/poemarket/pkg/types"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "poemarket",
		Short: "Path of Exile market data client",
		Long: "poemarket queries Path of Exile pricing data from the terminal:\n" +
			"bulk item overviews from poe.ninja and seller listings from the\n" +
			"official trade site.",
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.poemarket.yaml)")
	rootCmd.PersistentFlags().
		String("league", "", "league to query (overrides config)")
	rootCmd.PersistentFlags().
		String("language", "", "trade site language (overrides config)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("league", rootCmd.PersistentFlags().Lookup("league")))
	cobra.CheckErr(viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("language")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(overviewCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".poemarket")
	}

	viper.SetEnvPrefix("POEMARKET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: the config file when one was
// found, defaults otherwise, with flag overrides applied on top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if used := viper.ConfigFileUsed(); used != "" {
		loaded, err := config.Load(used)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if league := viper.GetString("league"); league != "" {
		cfg.Context.LeagueID = league
	}
	if language := viper.GetString("language"); language != "" {
		cfg.Context.Language = languageFromString(language)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func languageFromString(s string) domain.Language {
	return domain.Language(s)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
