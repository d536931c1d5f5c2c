// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultHostURL is the Ollama endpoint used when the config omits one.
	DefaultHostURL = "http://localhost:11434"
	// DefaultModel is the model benchmarked when the config omits one.
	DefaultModel = "llama3.1"
	// DefaultBenchmarkPath is the default path to the benchmark question set.
	DefaultBenchmarkPath = "benchmarks/simple_bench_public.json"
	// DefaultNumResponses is the number of responses sampled per question.
	DefaultNumResponses = 5
	// DefaultTemperature is the sampling temperature used when unset.
	DefaultTemperature = 0.7
	// DefaultTopP is the nucleus-sampling mass used when unset.
	DefaultTopP = 0.95
	// DefaultMaxTokens caps generated output length when unset.
	DefaultMaxTokens = 2048
	// DefaultMaxRetries bounds generation retry attempts when unset.
	DefaultMaxRetries = 3
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultLogDir is where timestamped run logs are written.
	defaultLogDir = "logs"
	// defaultResultsDir is where per-question JSONL results are appended.
	defaultResultsDir = "benchData"
)

// Config represents the top-level application configuration. Values are
// merged flags > config file > defaults before a Config is materialized, so
// consumers treat every field as final.
type Config struct {
	HostURL        string  `json:"hostUrl"`
	Model          string  `json:"model"`
	BenchmarkPath  string  `json:"benchmarkPath"`
	NumResponses   int     `json:"numResponses"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"topP"`
	MaxTokens      int     `json:"maxTokens"`
	MaxRetries     int     `json:"maxRetries"`
	TimeoutSeconds int     `json:"timeout,omitempty"`
	Debug          bool    `json:"debug"`
	SilenceHTTP    bool    `json:"silenceHttp"`
	LogDir         string  `json:"logDir,omitempty"`
	ResultsDir     string  `json:"resultsDir,omitempty"`
	ConfigPath     string  `json:"-"`
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogDirPath returns the directory for run log files, applying a default if not set.
func (c Config) LogDirPath() string {
	if dir := strings.TrimSpace(c.LogDir); dir != "" {
		return dir
	}
	return defaultLogDir
}

// ResultsDirPath returns the directory for per-question results, applying a default if not set.
func (c Config) ResultsDirPath() string {
	if dir := strings.TrimSpace(c.ResultsDir); dir != "" {
		return dir
	}
	return defaultResultsDir
}

// Validate checks that the merged configuration can drive a benchmark run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HostURL) == "" {
		return errors.New("config must set an Ollama host URL")
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("config must set a model to benchmark")
	}
	if strings.TrimSpace(c.BenchmarkPath) == "" {
		return errors.New("config must set a benchmark path")
	}
	if c.NumResponses < 1 {
		return fmt.Errorf("numResponses must be at least 1, got %d", c.NumResponses)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("maxRetries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

// Defaults returns a Config populated with every default value.
func Defaults() Config {
	return Config{
		HostURL:        DefaultHostURL,
		Model:          DefaultModel,
		BenchmarkPath:  DefaultBenchmarkPath,
		NumResponses:   DefaultNumResponses,
		Temperature:    DefaultTemperature,
		TopP:           DefaultTopP,
		MaxTokens:      DefaultMaxTokens,
		MaxRetries:     DefaultMaxRetries,
		TimeoutSeconds: int(defaultRequestTimeout.Seconds()),
	}
}

// Load reads the application configuration from the specified path and fills
// in defaults for omitted fields. The cobra layer merges flags through viper
// instead; Load exists for programmatic embedding and tests.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Defaults()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
