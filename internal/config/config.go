package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// DatabaseDriverPostgres persists everything in PostgreSQL.
	DatabaseDriverPostgres = "postgres"
	// DatabaseDriverMemory keeps all data in process memory. Useful for local runs.
	DatabaseDriverMemory = "memory"

	// EmailBackendLog writes outgoing emails to the log instead of sending them.
	EmailBackendLog = "log"
	// EmailBackendSES sends emails through Amazon SES.
	EmailBackendSES = "ses"
)

// Config represents the registrar configuration.
// Values are read from a yaml file and may be overridden by environment variables.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr              string        `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		MaxHeaderBytes int           `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		MetricsPath    string        `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// RateLimit is the number of requests per second a single client IP may issue
		RateLimit float64 `env:"HTTP_RATE_LIMIT" env-default:"20" yaml:"rateLimit"`
		RateBurst int     `env:"HTTP_RATE_BURST" env-default:"40" yaml:"rateBurst"`
		// AllowedOrigins are sent in CORS responses, "*" allows any origin
		AllowedOrigins string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" yaml:"allowedOrigins"`
	} `yaml:"http"`

	Database struct {
		// Driver selects the storage backend: "postgres" or "memory"
		Driver             string        `env:"DATABASE_DRIVER" env-default:"postgres" yaml:"driver"`
		Username           string        `env:"DATABASE_USERNAME" env-default:"registrar" yaml:"username"`
		Password           string        `env:"DATABASE_PASSWORD" env-default:"registrar" yaml:"password"`
		Host               string        `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		Port               int           `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		SslMode            string        `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		DatabaseName       string        `env:"DATABASE_NAME" env-default:"registrar" yaml:"name"`
		MaxOpenConnections int           `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		MaxIdleConnections int           `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		ConnMaxLifetime    time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		ConnMaxIdleTime    time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	Redis struct {
		// URL of the redis server holding wizard sessions. Empty keeps sessions in memory.
		URL          string        `env:"REDIS_URL" env-default:"" yaml:"url"`
		PoolSize     int           `env:"REDIS_POOL_SIZE" env-default:"10" yaml:"poolSize"`
		DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s" yaml:"dialTimeout"`
		ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" env-default:"3s" yaml:"readTimeout"`
		WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" env-default:"3s" yaml:"writeTimeout"`
		SessionTTL   time.Duration `env:"REDIS_SESSION_TTL" env-default:"24h" yaml:"sessionTTL"`
	} `yaml:"redis"`

	JWT struct {
		PublicKey  string        `env:"JWT_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
		PrivateKey string        `env:"JWT_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
		TTL        time.Duration `env:"JWT_TTL" env-default:"24h" yaml:"ttl"`
	} `yaml:"jwt"`

	Email struct {
		// Backend is "log" or "ses"
		Backend   string `env:"EMAIL_BACKEND" env-default:"log" yaml:"backend"`
		From      string `env:"EMAIL_FROM" env-default:"help@get.gov" yaml:"from"`
		AWSRegion string `env:"AWS_REGION" env-default:"us-gov-west-1" yaml:"awsRegion"`
	} `yaml:"email"`

	Registrar struct {
		// BaseURL prefixes links placed in emails
		BaseURL  string `env:"REGISTRAR_BASE_URL" env-default:"http://localhost:8080" yaml:"baseURL"`
		PageSize int    `env:"REGISTRAR_PAGE_SIZE" env-default:"10" yaml:"pageSize"`
		// MaxAlternativeDomains bounds the alternative domains a request may list
		MaxAlternativeDomains int `env:"REGISTRAR_MAX_ALTERNATIVE_DOMAINS" env-default:"10" yaml:"maxAlternativeDomains"`
		MaxOtherContacts      int `env:"REGISTRAR_MAX_OTHER_CONTACTS" env-default:"10" yaml:"maxOtherContacts"`
	} `yaml:"registrar"`

	Worker struct {
		MaxWorkers  int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
		MaxAttempts int `env:"WORKER_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
	} `yaml:"worker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// LoadEnv builds the configuration from environment variables and defaults only.
// It is used when no config file exists.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	return &cfg, nil
}
