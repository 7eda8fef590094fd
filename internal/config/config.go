package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// Config конфигурация сервиса
// Загружается один раз при старте и дальше не изменяется;
// маппинги услуг и рабочие часы инжектируются в usecases как значения
type Config struct {
	Server       ServerConfig        `toml:"server"`
	Database     DatabaseConfig      `toml:"database"`
	Redis        RedisConfig         `toml:"redis"`
	Logs         LogsConfig          `toml:"logs"`
	Metrics      MetricsConfig       `toml:"metrics"`
	FieldService IntegrationConfig   `toml:"fieldservice"`
	Payments     IntegrationConfig   `toml:"payments"`
	Messaging    IntegrationConfig   `toml:"messaging"`
	Booking      BookingConfig       `toml:"booking"`
	Hours        BusinessHoursConfig `toml:"business_hours"`
	ServiceTypes []ServiceTypeConfig `toml:"service_types"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis для очереди уведомлений
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig параметры расписания бронирования
type BookingConfig struct {
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
	DefaultRangeDays        int `toml:"default_range_days"`
}

// BusinessHoursConfig ежедневное окно рабочего времени в формате HH:MM
// Timezone - имя IANA-зоны, в которой определено окно; по умолчанию UTC
type BusinessHoursConfig struct {
	Open     string `toml:"open"`
	Close    string `toml:"close"`
	Timezone string `toml:"timezone"`
}

// ServiceTypeConfig маппинг типа услуги на тип работы внешней системы
type ServiceTypeConfig struct {
	ServiceTypeID   string `toml:"service_type_id"`
	JobTypeID       string `toml:"job_type_id"`
	Label           string `toml:"label"`
	DurationMinutes int    `toml:"duration_minutes"`
}

// Load загружает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Booking.MinBookingNoticeMinutes == 0 {
		cfg.Booking.MinBookingNoticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}
	if cfg.Booking.DefaultRangeDays == 0 {
		cfg.Booking.DefaultRangeDays = domain.DefaultAvailabilityRangeDays
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Hours.Timezone == "" {
		cfg.Hours.Timezone = "UTC"
	}
}

func validate(cfg *Config) error {
	if _, err := cfg.BusinessHours(); err != nil {
		return err
	}

	if len(cfg.ServiceTypes) == 0 {
		return fmt.Errorf("config: at least one [[service_types]] entry is required")
	}

	seen := make(map[string]struct{}, len(cfg.ServiceTypes))
	for _, st := range cfg.ServiceTypes {
		if st.ServiceTypeID == "" || st.JobTypeID == "" || st.Label == "" {
			return fmt.Errorf("config: service type entry must have service_type_id, job_type_id and label")
		}
		if st.DurationMinutes < domain.MinConsultationMinutes || st.DurationMinutes > domain.MaxConsultationMinutes {
			return fmt.Errorf("config: service type %s: duration_minutes must be in [%d, %d]",
				st.ServiceTypeID, domain.MinConsultationMinutes, domain.MaxConsultationMinutes)
		}
		if _, ok := seen[st.ServiceTypeID]; ok {
			return fmt.Errorf("config: duplicate service_type_id %s", st.ServiceTypeID)
		}
		seen[st.ServiceTypeID] = struct{}{}
	}

	return nil
}

// BusinessHours парсит рабочие часы в доменную модель
// Все вычисления слотов и окон идут в зоне business_hours.timezone,
// чтобы клиентские смещения в RFC3339 не влияли на результат
func (c *Config) BusinessHours() (domain.BusinessHours, error) {
	open, err := parseDayMinutes(c.Hours.Open)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("config: invalid business_hours.open: %w", err)
	}
	closeM, err := parseDayMinutes(c.Hours.Close)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("config: invalid business_hours.close: %w", err)
	}
	if open >= closeM {
		return domain.BusinessHours{}, fmt.Errorf("config: business_hours.open must be before business_hours.close")
	}
	loc, err := time.LoadLocation(c.Hours.Timezone)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("config: invalid business_hours.timezone: %w", err)
	}
	return domain.BusinessHours{OpenMinutes: open, CloseMinutes: closeM, Location: loc}, nil
}

// ServiceTypeMappings возвращает маппинги услуг в доменной модели
func (c *Config) ServiceTypeMappings() []domain.ServiceTypeMapping {
	mappings := make([]domain.ServiceTypeMapping, 0, len(c.ServiceTypes))
	for _, st := range c.ServiceTypes {
		mappings = append(mappings, domain.ServiceTypeMapping{
			ServiceTypeID:   st.ServiceTypeID,
			JobTypeID:       st.JobTypeID,
			Label:           st.Label,
			DurationMinutes: st.DurationMinutes,
		})
	}
	return mappings
}

func parseDayMinutes(s string) (int, error) {
	t, err := time.Parse(domain.TimeFormat, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
