package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

func parseTimeString(s string) (types.TimeString, error) {
	return types.NewTimeStringFromString(s)
}

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig       `toml:"server"`
	Database        DatabaseConfig     `toml:"database"`
	Logs            LogsConfig         `toml:"logs"`
	Metrics         MetricsConfig      `toml:"metrics"`
	TenantService   IntegrationConfig  `toml:"tenant_service"`
	NotifyService   IntegrationConfig  `toml:"notify_service"`
	CalendarService IntegrationConfig  `toml:"calendar_service"`
	Reservations    ReservationsConfig `toml:"reservations"`
	Worker          WorkerConfig       `toml:"worker"`
	Slots           SlotTableConfig    `toml:"slots"`
	Services        []ServiceConfig    `toml:"services"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
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

// DSN возвращает строку подключения к Postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// ReservationsConfig настройки движка бронирования
type ReservationsConfig struct {
	TimeUnitMinutes                    int `toml:"time_unit_minutes"`
	UserConcurrentReservationLimit     int `toml:"user_concurrent_reservation_limit"`
	MinutesToAllowReserveInPast        int `toml:"minutes_to_allow_reserve_in_past"`
	HoursAfterCompanyLimitIsNotChecked int `toml:"hours_after_company_limit_is_not_checked"`
}

// WorkerConfig настройки диспетчера outbox событий
type WorkerConfig struct {
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	BatchSize           int `toml:"batch_size"`
	MaxAttempts         int `toml:"max_attempts"`
	BaseDelaySeconds    int `toml:"base_delay_seconds"`
}

// SlotTableConfig слоты по дням недели
type SlotTableConfig struct {
	Monday    []SlotConfig `toml:"monday"`
	Tuesday   []SlotConfig `toml:"tuesday"`
	Wednesday []SlotConfig `toml:"wednesday"`
	Thursday  []SlotConfig `toml:"thursday"`
	Friday    []SlotConfig `toml:"friday"`
	Saturday  []SlotConfig `toml:"saturday"`
	Sunday    []SlotConfig `toml:"sunday"`
}

// SlotConfig одно окно вместимости
type SlotConfig struct {
	Start    string `toml:"start"`    // "08:00"
	End      string `toml:"end"`      // "11:00"
	Capacity int    `toml:"capacity"` // машин одновременно
}

// ServiceConfig услуга каталога моек
type ServiceConfig struct {
	ID            int64   `toml:"id"`
	Name          string  `toml:"name"`
	Group         string  `toml:"group"`
	TimeInMinutes int     `toml:"time_in_minutes"`
	Price         float64 `toml:"price"`
	PriceMpv      float64 `toml:"price_mpv"`
	Hidden        bool    `toml:"hidden"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Reservations.TimeUnitMinutes == 0 {
		cfg.Reservations.TimeUnitMinutes = domain.DefaultTimeUnitMinutes
	}
	if cfg.Reservations.UserConcurrentReservationLimit == 0 {
		cfg.Reservations.UserConcurrentReservationLimit = domain.DefaultUserConcurrentReservationLimit
	}
	if cfg.Reservations.MinutesToAllowReserveInPast == 0 {
		cfg.Reservations.MinutesToAllowReserveInPast = domain.DefaultMinutesToAllowReserveInPast
	}
	if cfg.Reservations.HoursAfterCompanyLimitIsNotChecked == 0 {
		cfg.Reservations.HoursAfterCompanyLimitIsNotChecked = domain.DefaultHoursAfterCompanyLimitIsNotChecked
	}
	if cfg.Worker.PollIntervalSeconds == 0 {
		cfg.Worker.PollIntervalSeconds = 10
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = 50
	}
	if cfg.Worker.MaxAttempts == 0 {
		cfg.Worker.MaxAttempts = 5
	}
	if cfg.Worker.BaseDelaySeconds == 0 {
		cfg.Worker.BaseDelaySeconds = 30
	}
}

func validate(cfg *Config) error {
	if cfg.Reservations.TimeUnitMinutes < domain.MinTimeUnitMinutes ||
		cfg.Reservations.TimeUnitMinutes > domain.MaxTimeUnitMinutes {
		return fmt.Errorf("reservations.time_unit_minutes must be in [%d, %d]",
			domain.MinTimeUnitMinutes, domain.MaxTimeUnitMinutes)
	}

	slots, err := cfg.Slots.ToDomain()
	if err != nil {
		return err
	}
	if err := slots.Validate(); err != nil {
		return fmt.Errorf("slots: %w", err)
	}

	seen := make(map[int64]struct{}, len(cfg.Services))
	for _, svc := range cfg.Services {
		if svc.ID <= 0 {
			return fmt.Errorf("services: id must be positive, got %d", svc.ID)
		}
		if _, dup := seen[svc.ID]; dup {
			return fmt.Errorf("services: duplicate id %d", svc.ID)
		}
		seen[svc.ID] = struct{}{}
		if svc.TimeInMinutes <= 0 {
			return fmt.Errorf("services: service %d must have positive time_in_minutes", svc.ID)
		}
	}

	return nil
}

// ToDomain конвертирует слоты конфигурации в доменную таблицу
func (s SlotTableConfig) ToDomain() (domain.SlotTable, error) {
	table := domain.SlotTable{}

	days := []struct {
		src []SlotConfig
		dst *[]domain.Slot
	}{
		{s.Monday, &table.Monday},
		{s.Tuesday, &table.Tuesday},
		{s.Wednesday, &table.Wednesday},
		{s.Thursday, &table.Thursday},
		{s.Friday, &table.Friday},
		{s.Saturday, &table.Saturday},
		{s.Sunday, &table.Sunday},
	}

	for _, day := range days {
		for _, slot := range day.src {
			converted, err := slot.toDomain()
			if err != nil {
				return table, err
			}
			*day.dst = append(*day.dst, converted)
		}
	}

	return table, nil
}

func (s SlotConfig) toDomain() (domain.Slot, error) {
	start, err := parseTimeString(s.Start)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("slot start %q: %w", s.Start, err)
	}
	end, err := parseTimeString(s.End)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("slot end %q: %w", s.End, err)
	}
	return domain.Slot{StartTime: start, EndTime: end, Capacity: s.Capacity}, nil
}

// EngineConfigProvider отдает usecase'ам готовый снимок конфигурации движка
// Снимок собирается один раз после успешной валидации конфига
type EngineConfigProvider struct {
	snapshot domain.EngineConfig
}

// NewEngineConfigProvider создает провайдер снимка конфигурации
func NewEngineConfigProvider(cfg *Config) (*EngineConfigProvider, error) {
	snapshot, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	return &EngineConfigProvider{snapshot: snapshot}, nil
}

// EngineConfig возвращает снимок конфигурации движка
func (p *EngineConfigProvider) EngineConfig() domain.EngineConfig {
	return p.snapshot
}

// EngineConfig собирает снимок конфигурации движка бронирования
// Снимок immutable: usecase получает его на каждый запрос
func (c *Config) EngineConfig() (domain.EngineConfig, error) {
	slots, err := c.Slots.ToDomain()
	if err != nil {
		return domain.EngineConfig{}, err
	}

	services := make([]domain.Service, 0, len(c.Services))
	for _, svc := range c.Services {
		services = append(services, domain.Service{
			ID:            svc.ID,
			Name:          svc.Name,
			Group:         svc.Group,
			TimeInMinutes: svc.TimeInMinutes,
			Price:         svc.Price,
			PriceMpv:      svc.PriceMpv,
			Hidden:        svc.Hidden,
		})
	}

	return domain.EngineConfig{
		Settings: domain.ReservationSettings{
			TimeUnitMinutes:                    c.Reservations.TimeUnitMinutes,
			UserConcurrentReservationLimit:     c.Reservations.UserConcurrentReservationLimit,
			MinutesToAllowReserveInPast:        c.Reservations.MinutesToAllowReserveInPast,
			HoursAfterCompanyLimitIsNotChecked: c.Reservations.HoursAfterCompanyLimitIsNotChecked,
		},
		Slots:   slots,
		Catalog: domain.NewServiceCatalog(services),
	}, nil
}
