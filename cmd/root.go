package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/varsilias/crystal/internal/config"
	"github.com/varsilias/crystal/internal/llm"
	"github.com/varsilias/crystal/internal/search"
	"github.com/varsilias/crystal/internal/weather"
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	rootCmd, err := newRootCmd(config.New(), version, commit, date)
	if err == nil {
		err = rootCmd.Execute()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "crystal:", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper, version, commit, date string) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "crystal",
		Short: "Crystal, a Portuguese-speaking personal assistant",
		Long: "Crystal answers weather, date, time, web search, list, reminder and news requests " +
			"and hands everything else to a Gemini chat model.",
		// Running crystal with no subcommand starts chat mode.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, v)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.PersistentFlags()
	f.String(config.KeyAddr, "8080", "HTTP listen port")
	f.String(config.KeyLogLevel, "info", "log level: debug|info|warn|error")
	f.Bool(config.KeyLogJSON, false, "log as JSON")
	f.String(config.KeySecrets, "secrets.toml", "TOML file holding the API secrets")
	f.String(config.KeyTimezone, "America/Sao_Paulo", "time zone for dates, clocks and reminders")
	f.String(config.KeyModel, llm.DefaultModel, "Gemini model")
	f.String(config.KeyLLMBaseURL, llm.DefaultBaseURL, "OpenAI-compatible chat endpoint")
	f.String(config.KeyWeatherBaseURL, weather.DefaultBaseURL, "OpenWeatherMap current weather endpoint")
	f.String(config.KeySearchBaseURL, search.DefaultBaseURL, "Google Custom Search endpoint")
	f.Duration(config.KeyHTTPTimeout, 15*time.Second, "timeout for each outbound API call")
	f.Duration(config.KeySessionTTL, 2*time.Hour, "evict sessions idle for longer than this")
	f.String(config.KeySessionSweep, "@every 10m", "cron schedule of the idle session sweep")
	// Flags only override when set, so environment variables still apply.
	if err := v.BindPFlags(f); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newChatCmd(v))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	return rootCmd, nil
}
