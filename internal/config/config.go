package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Mailer    MailerConfig    `toml:"mailer"`
	SMS       SMSConfig       `toml:"sms"`
	Redis     RedisConfig     `toml:"redis"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Admin     AdminConfig     `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	Timezone              string `toml:"timezone" env:"BOOKING_TIMEZONE"`
	CapacityPerSlot       int    `toml:"capacity_per_slot" env:"BOOKING_CAPACITY_PER_SLOT"`
	CodeTTLMinutes        int    `toml:"code_ttl_minutes"`
	ResendCooldownSeconds int    `toml:"resend_cooldown_seconds"`
	BcryptCost            int    `toml:"bcrypt_cost"`
	AdminEmail            string `toml:"admin_email" env:"BOOKING_ADMIN_EMAIL"`
}

// Location часовой пояс бронирований
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// CodeTTL срок действия кода подтверждения
func (b BookingConfig) CodeTTL() time.Duration {
	return time.Duration(b.CodeTTLMinutes) * time.Minute
}

// ResendCooldown минимальный интервал между повторными отправками
func (b BookingConfig) ResendCooldown() time.Duration {
	return time.Duration(b.ResendCooldownSeconds) * time.Second
}

type MailerConfig struct {
	URL     string `toml:"url" env:"MAILER_URL"`
	APIKey  string `toml:"api_key" env:"MAILER_API_KEY"`
	From    string `toml:"from" env:"MAILER_FROM"`
	Timeout int    `toml:"timeout"` // секунды
}

type SMSConfig struct {
	URL     string `toml:"url" env:"SMS_URL"`
	APIKey  string `toml:"api_key" env:"SMS_API_KEY"`
	Sender  string `toml:"sender" env:"SMS_SENDER"`
	Timeout int    `toml:"timeout"` // секунды
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled" env:"REDIS_ENABLED"`
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

type RabbitMQConfig struct {
	Enabled    bool   `toml:"enabled" env:"RABBITMQ_ENABLED"`
	URL        string `toml:"url" env:"RABBITMQ_URL"`
	Exchange   string `toml:"exchange" env:"RABBITMQ_EXCHANGE"`
	RoutingKey string `toml:"routing_key"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `toml:"requests_per_minute" env:"RATELIMIT_REQUESTS_PER_MINUTE"`
	Burst             int `toml:"burst" env:"RATELIMIT_BURST"`
}

type AdminConfig struct {
	Token string `toml:"token" env:"ADMIN_TOKEN"`
}

// Load читает TOML, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrReadConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 30)

	setDefaultString(&c.Database.Host, "localhost")
	setDefault(&c.Database.Port, 5432)
	setDefaultString(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefaultString(&c.Logs.Level, "info")

	setDefaultString(&c.Metrics.Path, "/metrics")
	setDefaultString(&c.Metrics.ServiceName, "inspection-booking")

	setDefaultString(&c.Booking.Timezone, domain.DefaultTimezone)
	setDefault(&c.Booking.CapacityPerSlot, domain.DefaultCapacityPerSlot)
	setDefault(&c.Booking.CodeTTLMinutes, int(domain.DefaultCodeTTL/time.Minute))
	setDefault(&c.Booking.ResendCooldownSeconds, int(domain.DefaultResendCooldown/time.Second))
	setDefault(&c.Booking.BcryptCost, 10)

	setDefault(&c.Mailer.Timeout, 10)
	setDefault(&c.SMS.Timeout, 10)

	setDefaultString(&c.Redis.Addr, "localhost:6379")

	setDefaultString(&c.RabbitMQ.Exchange, "inspection.bookings")

	setDefault(&c.RateLimit.RequestsPerMinute, 10)
	setDefault(&c.RateLimit.Burst, 5)
}

// Validate проверяет значения, без которых сервис не может работать
func (c *Config) Validate() error {
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.CapacityPerSlot <= 0 {
		return fmt.Errorf("%w: booking.capacity_per_slot must be positive", ErrInvalidConfig)
	}
	if c.Booking.CodeTTLMinutes <= 0 {
		return fmt.Errorf("%w: booking.code_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.ResendCooldownSeconds < 0 {
		return fmt.Errorf("%w: booking.resend_cooldown_seconds must not be negative", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
