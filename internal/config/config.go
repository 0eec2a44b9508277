package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Драйверы хранилища бронирований
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
)

// Источники каталога площадок
const (
	CatalogSourceDatabase = "database"
	CatalogSourceFile     = "file"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logs        LogsConfig        `toml:"logs"`
	Storage     StorageConfig     `toml:"storage"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Catalog     CatalogConfig     `toml:"catalog"`
	UserService UserServiceConfig `toml:"user_service"`
	Events      EventsConfig      `toml:"events"`
	Metrics     MetricsConfig     `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера. Таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// StorageConfig выбор хранилища бронирований
type StorageConfig struct {
	Driver string `toml:"driver"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// CatalogConfig источник каталога площадок.
// source = "file" - каталог читается из file в память,
// source = "database" - из таблиц venues/venue_time_slots; при seed_on_start file загружается в БД при старте.
type CatalogConfig struct {
	Source      string `toml:"source"`
	File        string `toml:"file"`
	SeedOnStart bool   `toml:"seed_on_start"`
}

// UserServiceConfig клиент сервиса пользователей.
// Пустой url - имя и роль берутся из заголовков шлюза X-User-Name / X-User-Role
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// EventsConfig публикация событий бронирований в RabbitMQ
type EventsConfig struct {
	Enabled        bool   `toml:"enabled"`
	URL            string `toml:"url"`
	Exchange       string `toml:"exchange"`
	QueueSize      int    `toml:"queue_size"`      // событий в очереди до отправки, сверх лимита отбрасываются
	PublishTimeout int    `toml:"publish_timeout"` // секунды на одну публикацию
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NeedsDatabase сообщает, нужен ли PostgreSQL при текущих настройках
func (c *Config) NeedsDatabase() bool {
	return c.Storage.Driver == StorageDriverPostgres || c.Catalog.Source == CatalogSourceDatabase
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует её
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "venue-booking:"
	}

	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogSourceDatabase
	}

	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 5
	}

	if c.Events.Exchange == "" {
		c.Events.Exchange = "venue_booking.events"
	}
	if c.Events.QueueSize == 0 {
		c.Events.QueueSize = 256
	}
	if c.Events.PublishTimeout == 0 {
		c.Events.PublishTimeout = 5
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "venue_booking_service"
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory, StorageDriverRedis:
	default:
		problems = append(problems, fmt.Sprintf("storage.driver %q is not one of postgres, memory, redis", c.Storage.Driver))
	}

	switch c.Catalog.Source {
	case CatalogSourceDatabase:
		if c.Catalog.SeedOnStart && c.Catalog.File == "" {
			problems = append(problems, "catalog.file is required when catalog.seed_on_start is set")
		}
	case CatalogSourceFile:
		if c.Catalog.File == "" {
			problems = append(problems, "catalog.file is required when catalog.source = \"file\"")
		}
	default:
		problems = append(problems, fmt.Sprintf("catalog.source %q is not one of database, file", c.Catalog.Source))
	}

	if c.NeedsDatabase() && c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}

	if c.Events.Enabled && c.Events.URL == "" {
		problems = append(problems, "events.url is required when events are enabled")
	}
	if c.Events.QueueSize < 0 || c.Events.PublishTimeout < 0 {
		problems = append(problems, "events.queue_size and events.publish_timeout must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
