package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/mindrisk"
)

var (
	// Global flags
	cfgFile      string
	logLevel     string
	logFile      string
	outputFormat string
	modelDir     string

	logger = logrus.New()
)

// Build-time variables
var (
	Version = "dev"
	Commit  = "unknown"
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mindrisk",
	Short: "Mental-health risk screening from questionnaires and free text",
	Long: `mindrisk scores PHQ-9 and GAD-7 questionnaires, analyzes free text for
depression, anxiety and stress indicators, trains and serves a TF-IDF risk
classifier, and fuses the results into one assessment with recommendations.

It is a screening aid, not a diagnostic tool.`,
	Version:      fmt.Sprintf("%s (commit: %s)", Version, Commit),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(viper.GetString("output")); err != nil {
			return err
		}
		return initLogging()
	},
}

// Execute runs the root command. It is called by main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mindrisk.yaml or $HOME/.mindrisk/mindrisk.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file, rotated by size")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&modelDir, "model-dir", "", "directory holding trained model artifacts")

	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("model-dir", rootCmd.PersistentFlags().Lookup("model-dir"))
}

// initConfig loads .env, locates the config file and wires environment
// variables prefixed MINDRISK_.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.mindrisk")
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("mindrisk")
	}

	viper.SetEnvPrefix("MINDRISK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
	}
}

// loadConfig reads the engine configuration from the config file viper
// located, then applies the --model-dir flag.
func loadConfig() (mindrisk.Config, error) {
	cfg, err := mindrisk.LoadConfig(viper.ConfigFileUsed())
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if dir := viper.GetString("model-dir"); dir != "" {
		cfg.ModelDir = dir
	}
	return cfg, nil
}

// newEngine builds an engine from the loaded configuration.
func newEngine() (*mindrisk.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return mindrisk.NewEngine(cfg, mindrisk.WithLogger(logger))
}
