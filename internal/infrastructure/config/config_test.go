package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Shopping: ShoppingConfig{
			CurrencyPrefix: "Nrs",
			PriceMin:       10,
			PriceMax:       500,
		},
		Cache: CacheConfig{
			Enabled:         true,
			MaxSize:         1000,
			TTL:             10 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Queue: QueueConfig{Workers: 2, MaxSize: 100},
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = 0 }},
		{"missing redis addr", func(c *Config) { c.Redis.Addr = "" }},
		{"negative price min", func(c *Config) { c.Shopping.PriceMin = -1 }},
		{"price max below min", func(c *Config) { c.Shopping.PriceMax = 5 }},
		{"sms enabled without gateway", func(c *Config) { c.SMS.Enabled = true }},
		{"cache without max size", func(c *Config) { c.Cache.MaxSize = 0 }},
		{"cache without ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"no queue workers", func(c *Config) { c.Queue.Workers = 0 }},
		{"no queue capacity", func(c *Config) { c.Queue.MaxSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestValidateConfigCacheDisabledSkipsCacheChecks(t *testing.T) {
	cfg := validTestConfig()
	cfg.Cache = CacheConfig{Enabled: false}
	assert.NoError(t, validateConfig(cfg))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-1...wxyz", maskAPIKey("sk-1234567890wxyz"))
}
