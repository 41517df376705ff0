package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		RPCURL:             "https://api.mainnet-beta.solana.com",
		PrivateKey:         "some-key",
		PrimaryCommitment:  "confirmed",
		FallbackCommitment: "processed",
		ComputeUnitLimit:   200_000,
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PUMPTRADE_RPC_URL", "https://api.mainnet-beta.solana.com")
	t.Setenv("PUMPTRADE_PRIVATE_KEY", "some-key")
	t.Setenv("PUMPTRADE_COMPUTE_UNIT_PRICE", "10000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCURL)
	assert.Equal(t, "some-key", cfg.PrivateKey)
	assert.Equal(t, uint64(10_000), cfg.ComputeUnitPrice, "env overrides the default")
	assert.Equal(t, DefaultPrimaryCommitment, cfg.PrimaryCommitment)
	assert.Equal(t, DefaultFallbackCommitment, cfg.FallbackCommitment)
	assert.Equal(t, uint32(DefaultComputeUnitLimit), cfg.ComputeUnitLimit)
}

func TestLoadRequiresRPCURL(t *testing.T) {
	t.Setenv("PUMPTRADE_PRIVATE_KEY", "some-key")

	_, err := Load()
	assert.ErrorContains(t, err, "rpc_url")
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))

	cfg := validTestConfig()
	cfg.RPCURL = "ws://not-http.example.com"
	assert.Error(t, validateConfig(cfg), "non-http scheme rejected")

	cfg = validTestConfig()
	cfg.PrivateKey = ""
	assert.ErrorContains(t, validateConfig(cfg), "private_key")

	cfg = validTestConfig()
	cfg.PrimaryCommitment = "instant"
	assert.ErrorContains(t, validateConfig(cfg), "primary_commitment")

	cfg = validTestConfig()
	cfg.FallbackCommitment = ""
	assert.ErrorContains(t, validateConfig(cfg), "fallback_commitment")

	cfg = validTestConfig()
	cfg.ComputeUnitLimit = 0
	assert.ErrorContains(t, validateConfig(cfg), "compute_unit_limit")
}
