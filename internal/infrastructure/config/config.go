package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Shopping    ShoppingConfig  `mapstructure:"shopping"`
	SMS         SMSConfig       `mapstructure:"sms"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Queue       QueueConfig     `mapstructure:"queue"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// RedisConfig 文件資料庫（Redis）配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ShoppingConfig 購物清單設定
type ShoppingConfig struct {
	CurrencyPrefix string  `mapstructure:"currency_prefix"`
	PriceMin       float64 `mapstructure:"price_min"`
	PriceMax       float64 `mapstructure:"price_max"`
	UseCatalog     bool    `mapstructure:"use_catalog"`
}

// SMSConfig 簡訊閘道配置
type SMSConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	GatewayURL string        `mapstructure:"gateway_url"`
	APIKey     string        `mapstructure:"api_key"`
	Sender     string        `mapstructure:"sender"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// QueueConfig 簡訊發送隊列設定
type QueueConfig struct {
	Workers int `mapstructure:"workers"`
	MaxSize int `mapstructure:"max_size"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("sms.enabled", "SMS_ENABLED")
	viper.BindEnv("sms.gateway_url", "SMS_GATEWAY_URL")
	viper.BindEnv("sms.api_key", "SMS_API_KEY")
	viper.BindEnv("sms.sender", "SMS_SENDER")
	viper.BindEnv("shopping.currency_prefix", "CURRENCY_PREFIX")
	viper.BindEnv("shopping.use_catalog", "SHOPPING_USE_CATALOG")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "redis_addr:", viper.GetString("redis.addr"), "sms_api_key:", maskAPIKey(viper.GetString("sms.api_key")))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "mealmate-api")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Redis 設定
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// 購物清單設定
	viper.SetDefault("shopping.currency_prefix", "Nrs")
	viper.SetDefault("shopping.price_min", 10.0)
	viper.SetDefault("shopping.price_max", 500.0)
	viper.SetDefault("shopping.use_catalog", false)

	// 簡訊設定
	viper.SetDefault("sms.enabled", false)
	viper.SetDefault("sms.sender", "MealMate")
	viper.SetDefault("sms.timeout", "10s")

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 隊列設定
	viper.SetDefault("queue.workers", 2)
	viper.SetDefault("queue.max_size", 100)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 新增 dedup window 預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證 Redis 設定
	if config.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}

	// 驗證購物清單設定
	if config.Shopping.PriceMin < 0 || config.Shopping.PriceMax < config.Shopping.PriceMin {
		return fmt.Errorf("invalid shopping price range")
	}

	// 驗證簡訊設定
	if config.SMS.Enabled && config.SMS.GatewayURL == "" {
		return fmt.Errorf("sms gateway url is required when sms is enabled")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證隊列設定
	if config.Queue.Workers <= 0 {
		return fmt.Errorf("invalid queue workers")
	}
	if config.Queue.MaxSize <= 0 {
		return fmt.Errorf("invalid queue max size")
	}

	return nil
}
