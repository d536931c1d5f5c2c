// internal/commands/root.go
package simplebench

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/simplebench/internal/appconfig"
	"github.com/mwiater/simplebench/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "simplebench",
	Short: "simplebench — majority-vote accuracy benchmarks for local Ollama models",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// If the user did not set a flag, copy the config value into the
		// flag so both pflags and viper reflect the same, final value.
		for _, name := range []string{"debug", "silenceHttp"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}

		// Materialize the fully merged configuration (flags > config >
		// defaults) into a stable snapshot for the other packages.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogDirPath(), cfg.Debug, cfg.SilenceHTTP); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().String("host", appconfig.DefaultHostURL, "Ollama host URL")
	rootCmd.PersistentFlags().String("model", appconfig.DefaultModel, "model to benchmark (must be available on the host)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("silenceHttp", true, "suppress request/response payload logging")
	rootCmd.PersistentFlags().String("logDir", "", "directory for timestamped run logs (defaults to logs/)")

	_ = viper.BindPFlag("hostUrl", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("silenceHttp", rootCmd.PersistentFlags().Lookup("silenceHttp"))
	_ = viper.BindPFlag("logDir", rootCmd.PersistentFlags().Lookup("logDir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file and sets safe defaults.
func ensureConfigLoaded() error {
	viper.SetDefault("hostUrl", appconfig.DefaultHostURL)
	viper.SetDefault("model", appconfig.DefaultModel)
	viper.SetDefault("benchmarkPath", appconfig.DefaultBenchmarkPath)
	viper.SetDefault("numResponses", appconfig.DefaultNumResponses)
	viper.SetDefault("temperature", appconfig.DefaultTemperature)
	viper.SetDefault("topP", appconfig.DefaultTopP)
	viper.SetDefault("maxTokens", appconfig.DefaultMaxTokens)
	viper.SetDefault("maxRetries", appconfig.DefaultMaxRetries)
	viper.SetDefault("debug", false)
	viper.SetDefault("silenceHttp", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No file: fine, we'll use defaults/flags.
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
