package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/debnit/MsmeBazaar-sub001/internal/engine"
	"github.com/debnit/MsmeBazaar-sub001/internal/features"
	"github.com/debnit/MsmeBazaar-sub001/internal/heuristic"
	"github.com/debnit/MsmeBazaar-sub001/internal/web"
)

const (
	app = "msme-matchmaker"
)

type Config struct {
	Remote    *RemoteConfig     `mapstructure:"remote"`
	Engine    *engine.Config    `mapstructure:"engine"`
	Heuristic *HeuristicConfig  `mapstructure:"heuristic"`
	History   *HistoryConfig    `mapstructure:"history"`
	Server    *web.Config       `mapstructure:"server"`
	Catalog   *features.Catalog `mapstructure:"catalog"`
}

type RemoteConfig struct {
	Endpoint            string `mapstructure:"endpoint"`
	TokenFile           string `mapstructure:"token-file"`
	ModelVersion        string `mapstructure:"model-version"`
	TimeoutSeconds      int    `mapstructure:"timeout-seconds"`
	PollIntervalSeconds int    `mapstructure:"poll-interval-seconds"`
}

type HeuristicConfig struct {
	Weights    *heuristic.Weights `mapstructure:"weights"`
	Confidence float64            `mapstructure:"confidence"`
}

type HistoryConfig struct {
	Cap         int    `mapstructure:"cap"`
	PostgresDSN string `mapstructure:"postgres-dsn"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "msme-matchmaker ranks MSME business listings against a buyer's acquisition preferences",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("remote.token-file", "MATCHMAKING_TOKEN_FILE"); err != nil {
		log.Fatalf("binding MATCHMAKING_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is msme-matchmaker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run and serve commands.
	if runCmd.CalledAs() == "" && serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
