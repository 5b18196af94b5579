package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when it is read from the environment,
// e.g. DIARIES_BASE_URL.
const EnvPrefix = "DIARIES"

// Configuration keys.
const (
	KeyBaseURL            = "base_url"
	KeyInsecureSkipVerify = "insecure_skip_verify"
	KeyRequestTimeout     = "request_timeout"
	KeyLogLevel           = "log_level"
	KeyLogRequests        = "log_requests"
	KeyE2ERemote          = "e2e_remote"
)

// Defaults.
const (
	DefaultBaseURL        = "https://localhost:44369"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Config holds the settings shared by the CLI and the end-to-end suite.
type Config struct {
	BaseURL            string        `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify" json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout"`
	LogLevel           string        `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogRequests        bool          `mapstructure:"log_requests" json:"log_requests" yaml:"log_requests"`
	E2ERemote          bool          `mapstructure:"e2e_remote" json:"e2e_remote" yaml:"e2e_remote"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"base-url":  KeyBaseURL,
	"insecure":  KeyInsecureSkipVerify,
	"timeout":   KeyRequestTimeout,
	"log-level": KeyLogLevel,
	"verbose":   KeyLogRequests,
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an optional YAML or JSON configuration file.
	File string
	// EnvFiles are dotenv files loaded into the process environment.
	// Missing files are skipped.
	EnvFiles []string
	// Flags, when set, take precedence over every other source for the
	// flags the user actually passed.
	Flags *pflag.FlagSet
}

// Load resolves the configuration from defaults, the optional file, dotenv
// files, DIARIES_* environment variables and command line flags, in
// increasing order of precedence. The result is validated.
func Load(opts Options) (*Config, error) {
	if err := LoadEnvFiles(opts.EnvFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnvFiles loads each dotenv file that exists. Variables already present
// in the environment are left untouched.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("error loading env file %s: %w", path, err)
		}
	}
	return nil
}

// Default returns the configuration used when no source overrides anything.
func Default() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       DefaultLogLevel,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyInsecureSkipVerify, false)
	v.SetDefault(KeyRequestTimeout, DefaultRequestTimeout)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogRequests, false)
	v.SetDefault(KeyE2ERemote, false)
}
