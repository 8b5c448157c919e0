// Package config loads layered configuration (env > file > defaults) for
// the pbjc compiler, grounded in dgnsrekt/gexbot-downloader's
// internal/config package. Command-line flags are not bound into it.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the codec, output, gateway and logging sections. cmd/pbjc
// is the only caller of Load; package gateway does not read it.
type Config struct {
	Codec   CodecConfig   `mapstructure:"codec"`
	Output  OutputConfig  `mapstructure:"output"`
	Gateway GatewayConfig `mapstructure:"gateway"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CodecConfig mirrors spec.md §6.4's per-parse configuration knobs so
// they can be set once at the process level instead of per call.
type CodecConfig struct {
	MaxDepth           uint32 `mapstructure:"max_depth"`
	StrictDefault      bool   `mapstructure:"strict_default"`
	ParseUnknownFields bool   `mapstructure:"parse_unknown_fields"`
}

type OutputConfig struct {
	Directory string `mapstructure:"directory"`
}

type GatewayConfig struct {
	ListenAddr      string  `mapstructure:"listen_addr"`
	RateLimitPerSec float64 `mapstructure:"rate_limit_per_sec"`
	RateLimitBurst  int     `mapstructure:"rate_limit_burst"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configPath (if non-empty) layered under ./configs and the
// working directory, with PBJ_-prefixed environment variable overrides,
// matching gexbot-downloader's config.Load.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("codec.max_depth", 64)
	v.SetDefault("codec.strict_default", false)
	v.SetDefault("codec.parse_unknown_fields", true)
	v.SetDefault("output.directory", "gen")
	v.SetDefault("gateway.listen_addr", ":8080")
	v.SetDefault("gateway.rate_limit_per_sec", 20.0)
	v.SetDefault("gateway.rate_limit_burst", 40)
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("PBJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pbj")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
