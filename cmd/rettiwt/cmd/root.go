package cmd

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rettiwt "github.com/omarcinkonis/rettiwt-go"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rettiwt",
	Short: "Client for X's private GraphQL API",
	Long: `rettiwt reads tweets, profiles, and timelines from X's private
GraphQL API. Without an API key it runs at guest level, which covers
single lookups and user timelines; search, follower lists, and posting
need an API key (base64-encoded session cookie string).`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.rettiwt/config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "API key (base64 session cookie string)")
	rootCmd.PersistentFlags().String("proxy", "", "proxy URL for outbound requests")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr")

	_ = viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("proxy", rootCmd.PersistentFlags().Lookup("proxy"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".rettiwt"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("RETTIWT")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// newClient builds a client from the resolved configuration.
func newClient() (*rettiwt.Client, error) {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return rettiwt.NewClient(rettiwt.ClientConfig{
		APIKey: viper.GetString("api_key"),
		Proxy:  viper.GetString("proxy"),
		Logger: logger,
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
