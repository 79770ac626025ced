package cmd

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resumeroast"
)

type Config struct {
	AI      *AIConfig      `mapstructure:"ai"`
	Scoring *ScoringConfig `mapstructure:"scoring"`
	Rank    *RankConfig    `mapstructure:"rank"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Backends []string      `mapstructure:"backends"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	OpenAI   *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type OpenAIConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	BaseURL      string `mapstructure:"base-url"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ScoringConfig struct {
	CommentBonusCap float64 `mapstructure:"comment-bonus-cap"`
}

type RankConfig struct {
	Top          int           `mapstructure:"top"`
	Workers      int           `mapstructure:"workers"`
	RequestDelay time.Duration `mapstructure:"request-delay"`
	ExcludeFile  string        `mapstructure:"exclude-file"`
	Exclude      *struct {
		Companies []string
	}
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resumeroast scores resumes against job postings with a deterministic analysis and optional AI evaluators",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is $HOME/.resumeroast.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the score and rank commands. Everything else
	// runs without it.
	if scoreCmd.CalledAs() == "" && rankCmd.CalledAs() == "" {
		return
	}

	// A local .env file may carry API keys during development.
	_ = godotenv.Load()

	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.backends", []string{"gemini"})

	viper.SetEnvPrefix(strings.ToUpper(app))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("." + app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error. A missing file
	// is fine unless one was requested explicitly: flags and environment
	// variables cover everything the commands need.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	err := viper.Unmarshal(config)
	if err != nil {
		return config, err
	}

	return config, nil
}
