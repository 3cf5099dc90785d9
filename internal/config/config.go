package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig      `toml:"server"`
	Database       DatabaseConfig    `toml:"database"`
	Logs           LogsConfig        `toml:"logs"`
	Metrics        MetricsConfig     `toml:"metrics"`
	Redis          RedisConfig       `toml:"redis"`
	NotifyService  IntegrationConfig `toml:"notify_service"`
	PaymentService IntegrationConfig `toml:"payment_service"`
	Scheduling     SchedulingConfig  `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// RedisConfig настройки redis-кеша отчёта доступности
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Address    string `toml:"address"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// IntegrationConfig настройки HTTP-клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig бизнес-константы движка расписания
// Явная конфигурация вместо зашитых в код литералов: буферы, потолок продления,
// границы рабочих часов и базовая длительность настраиваются на деплой
type SchedulingConfig struct {
	BufferMinutes            int    `toml:"buffer_minutes"`
	ExtensionCeilingHours    int    `toml:"extension_ceiling_hours"`
	DefaultBaseDurationHours int    `toml:"default_base_duration_hours"`
	EarliestStart            string `toml:"earliest_start"` // "08:00"
	LatestStart              string `toml:"latest_start"`   // "21:59"
}

// Rules конвертирует конфигурацию в правила планирования движка
// Нулевые значения заменяются дефолтами домена
func (s SchedulingConfig) Rules() (domain.ScheduleRules, error) {
	rules := domain.DefaultScheduleRules()

	if s.BufferMinutes > 0 {
		rules.BufferMinutes = s.BufferMinutes
	}
	if s.ExtensionCeilingHours > 0 {
		rules.ExtensionCeilingHours = s.ExtensionCeilingHours
	}
	if s.DefaultBaseDurationHours > 0 {
		rules.DefaultBaseDurationHours = s.DefaultBaseDurationHours
	}

	if s.EarliestStart != "" {
		m, err := minutesOf(s.EarliestStart)
		if err != nil {
			return rules, fmt.Errorf("config: invalid scheduling.earliest_start: %w", err)
		}
		rules.EarliestStartMinutes = m
	}
	if s.LatestStart != "" {
		m, err := minutesOf(s.LatestStart)
		if err != nil {
			return rules, fmt.Errorf("config: invalid scheduling.latest_start: %w", err)
		}
		rules.LatestStartMinutes = m
	}

	if rules.LatestStartMinutes < rules.EarliestStartMinutes {
		return rules, fmt.Errorf("config: scheduling.latest_start is before scheduling.earliest_start")
	}

	return rules, nil
}

func minutesOf(s string) (int, error) {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return 0, err
	}
	return ts.Minutes()
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	return &cfg, nil
}
