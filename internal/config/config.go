package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"file://internal/database/migrations"`
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	JWT struct {
		Secret string        `env:"JWT_SECRET,required"`
		TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
	}

	// Настройки S3 (AWS или MinIO)
	S3 struct {
		Endpoint        string        `env:"S3_ENDPOINT"`
		AccessKeyID     string        `env:"S3_ACCESS_KEY_ID,required"`
		SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY,required"`
		UseSSL          bool          `env:"S3_USE_SSL"`
		BucketName      string        `env:"S3_BUCKET_NAME,required"`
		Region          string        `env:"S3_REGION,required"`
		PublicURL       string        `env:"S3_PUBLIC_URL"`
		PresignTTL      time.Duration `env:"S3_PRESIGN_TTL" envDefault:"10m"`
		KeyPrefix       string        `env:"S3_KEY_PREFIX" envDefault:"images"`
	}

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL,required"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"image_cleanup_queue"`
	}

	// Redis нужен только для распределённого rate limit,
	// без REDIS_ADDR используется лимитер в памяти
	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB"`
	}

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	return &cfg, nil
}

// S3EndpointURL возвращает полный URL эндпоинта S3 с учётом S3_USE_SSL.
// Пустая строка означает стандартный эндпоинт AWS.
func (c *Config) S3EndpointURL() string {
	if c.S3.Endpoint == "" {
		return ""
	}
	if c.S3.UseSSL {
		return "https://" + c.S3.Endpoint
	}
	return "http://" + c.S3.Endpoint
}
