package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

// ErrInvalidConfig возвращается при некорректных значениях в конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Redis    RedisConfig    `toml:"redis"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig рабочие часы зала и правила бронирования
type ScheduleConfig struct {
	OpenHour          int    `toml:"open_hour"`
	CloseHour         int    `toml:"close_hour"`
	SlotMinutes       int    `toml:"slot_minutes"`
	MaxRecurrenceDays int    `toml:"max_recurrence_days"`
	Timezone          string `toml:"timezone"`
}

// Location загружает часовой пояс расписания
func (c ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// RedisConfig распределенная блокировка по оборудованию.
// При Enabled=false используется блокировка в памяти процесса.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	LockTTL    int    `toml:"lock_ttl"`     // секунды
	LockWaitMs int    `toml:"lock_wait_ms"` // сколько ждать занятую блокировку
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения DB_PASSWORD / REDIS_PASSWORD и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах и для встроенных конфигов)
func Parse(data string) (*Config, error) {
	cfg := Default()

	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "gym_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "gym_booking_service",
		},
		Schedule: ScheduleConfig{
			OpenHour:          domain.DefaultOpenHour,
			CloseHour:         domain.DefaultCloseHour,
			SlotMinutes:       domain.DefaultSlotMinutes,
			MaxRecurrenceDays: domain.DefaultMaxRecurrenceDays,
			Timezone:          domain.DefaultTimezone,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			LockTTL:    10,
			LockWaitMs: 2000,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// applyDefaults заполняет значения, явно обнуленные в файле
func (c *Config) applyDefaults() {
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = domain.DefaultTimezone
	}
	if c.Schedule.MaxRecurrenceDays == 0 {
		c.Schedule.MaxRecurrenceDays = domain.DefaultMaxRecurrenceDays
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	// параметры сетки проверяет сам генератор слотов
	grid := domain.SlotGrid{
		OpenHour:    c.Schedule.OpenHour,
		CloseHour:   c.Schedule.CloseHour,
		SlotMinutes: c.Schedule.SlotMinutes,
	}
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("%w: schedule: %w", ErrInvalidConfig, err)
	}

	if c.Schedule.MaxRecurrenceDays < 0 {
		return fmt.Errorf("%w: schedule.max_recurrence_days must be positive", ErrInvalidConfig)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
		}
		if c.Redis.LockTTL <= 0 {
			return fmt.Errorf("%w: redis.lock_ttl must be positive", ErrInvalidConfig)
		}
	}

	return nil
}
