// Package config предоставляет структуры и функцию для загрузки конфигурации сервиса.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// SessionStoreMemory — сессии хранятся в памяти процесса.
	SessionStoreMemory = "memory"
	// SessionStoreRedis — сессии хранятся в Redis.
	SessionStoreRedis = "redis"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	Session                 `yaml:"session"`
	Scorer                  `yaml:"scorer"`
	RabbitMQ                `yaml:"rabbitmq"`
	CORS                    `yaml:"cors"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:3001"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis  string        `yaml:"addressredis"`
	PasswordRedis string        `yaml:"password"`
	UserRedis     string        `yaml:"user"`
	DBRedis       int           `yaml:"db"`
	MaxRetries    int           `yaml:"max_retries"`
	DialTimeout   time.Duration `yaml:"dial_timeout"`
	TimeoutRedis  time.Duration `yaml:"timeoutredis"`
}

// Session настройки реестра сессий и сессионной cookie.
//
// SessionTTL равный нулю означает бессрочную сессию до перезапуска или logout.
type Session struct {
	SessionStore string        `yaml:"store" env-default:"memory"`
	SessionTTL   time.Duration `yaml:"ttl"`
	CookieName   string        `yaml:"cookie_name" env-default:"sessionId"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// Scorer настройки внешнего ML-сервиса.
type Scorer struct {
	ScorerURL     string        `yaml:"url" env:"SCORER_URL" env-default:"http://localhost:5000"`
	ScorerTimeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// RabbitMQ настройки публикации событий анализа. Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitMQURL      string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange         string        `yaml:"exchange" env-default:"analyses"`
	RoutingKey       string        `yaml:"routing_key" env-default:"analysis.created"`
	ConnectRetries   int           `yaml:"connect_retries" env-default:"3"`
	ConnectRetryWait time.Duration `yaml:"connect_retry_wait" env-default:"2s"`
}

// CORS настройки разрешённых источников. Если список пуст, разрешены localhost-источники.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MustLoad загружает конфиг из файла CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load читает конфиг из файла и проверяет его.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.StorageConnectionString == "" {
		return fmt.Errorf("storage_connection_string is required")
	}
	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.AddressRedis == "" {
			return fmt.Errorf("redis_connection.addressredis is required for redis session store")
		}
	default:
		return fmt.Errorf("unknown session store %q", c.SessionStore)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative")
	}
	if c.ScorerTimeout <= 0 {
		return fmt.Errorf("scorer timeout must be positive")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  Store: %s\n"+
			"  TTL: %s\n"+
			"  Cookie: %s (secure=%t)\n"+
			"Scorer:\n"+
			"  URL: %s\n"+
			"  Timeout: %s\n"+
			"RabbitMQ enabled: %t\n",
		c.Env,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.SessionStore,
		c.SessionTTL,
		c.CookieName,
		c.CookieSecure,
		c.ScorerURL,
		c.ScorerTimeout,
		c.RabbitMQURL != "",
	)
}
