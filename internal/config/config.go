// internal/config/config.go
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the process-wide settings. It is populated once at startup
// and read-only afterwards; per-call parameters (mint, amounts, slippage)
// travel as function arguments instead.
type Config struct {
	RPCURL             string `mapstructure:"rpc_url"`
	PrivateKey         string `mapstructure:"private_key"`
	PumpProgramID      string `mapstructure:"pump_program_id"`
	FeeProgramID       string `mapstructure:"fee_program_id"`
	PrimaryCommitment  string `mapstructure:"primary_commitment"`
	FallbackCommitment string `mapstructure:"fallback_commitment"`
	ComputeUnitLimit   uint32 `mapstructure:"compute_unit_limit"`
	ComputeUnitPrice   uint64 `mapstructure:"compute_unit_price"`
	DebugLogging       bool   `mapstructure:"debug_logging"`
	LogFile            string `mapstructure:"log_file"`
}

const (
	DefaultPrimaryCommitment  = "confirmed"
	DefaultFallbackCommitment = "processed"
	DefaultComputeUnitLimit   = 200_000
	DefaultComputeUnitPrice   = 5_000 // micro-lamports per compute unit
)

// Load reads configuration from the environment (PUMPTRADE_ prefix).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PUMPTRADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := map[string]interface{}{
		"primary_commitment":  DefaultPrimaryCommitment,
		"fallback_commitment": DefaultFallbackCommitment,
		"compute_unit_limit":  DefaultComputeUnitLimit,
		"compute_unit_price":  DefaultComputeUnitPrice,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// AutomaticEnv only resolves keys viper has seen, so bind each one.
	for _, key := range []string{
		"rpc_url", "private_key", "pump_program_id", "fee_program_id",
		"primary_commitment", "fallback_commitment",
		"compute_unit_limit", "compute_unit_price",
		"debug_logging", "log_file",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.RPCURL == "" {
		return errors.New("missing rpc_url in configuration")
	}
	if err := validateURL(cfg.RPCURL, "http"); err != nil {
		return errors.New("invalid RPC URL protocol")
	}
	if cfg.PrivateKey == "" {
		return errors.New("missing private_key in configuration")
	}
	switch cfg.PrimaryCommitment {
	case "processed", "confirmed", "finalized":
	default:
		return errors.New("invalid primary_commitment")
	}
	switch cfg.FallbackCommitment {
	case "processed", "confirmed", "finalized":
	default:
		return errors.New("invalid fallback_commitment")
	}
	if cfg.ComputeUnitLimit == 0 {
		return errors.New("invalid compute_unit_limit")
	}
	return nil
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}
