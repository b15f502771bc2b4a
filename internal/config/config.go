// Package config carga la configuración del servicio con Viper: archivo YAML opcional,
// variables de entorno VPET_* y defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"virtual-pet/internal/domain/stats"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Swagger habilita /swagger/*.
	Swagger bool `mapstructure:"swagger"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig: DSN vacío = storage en memoria.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// AuthConfig: BaseURL vacío = modo dev (header X-Debug-User-ID).
type AuthConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	APIKeyHeader string        `mapstructure:"api_key_header"`
	VerifyPath   string        `mapstructure:"verify_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

func (a AuthConfig) Enabled() bool { return strings.TrimSpace(a.BaseURL) != "" }

type LoggingConfig struct {
	// Level: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format: json, console (text es alias de console).
	Format string `mapstructure:"format"`
	App    string `mapstructure:"app"`
}

type SweeperConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	Concurrency int           `mapstructure:"concurrency"`
}

// BalanceConfig expone las tasas del motor de degradación.
type BalanceConfig struct {
	HungerPerHour         float64       `mapstructure:"hunger_per_hour"`
	HappinessPerHour      float64       `mapstructure:"happiness_per_hour"`
	EnergyDecayPerHour    float64       `mapstructure:"energy_decay_per_hour"`
	EnergyRecoveryPerHour float64       `mapstructure:"energy_recovery_per_hour"`
	HealthPerHour         float64       `mapstructure:"health_per_hour"`
	GraceMultiplier       float64       `mapstructure:"grace_multiplier"`
	GracePeriod           time.Duration `mapstructure:"grace_period"`
	SleepStartHour        int           `mapstructure:"sleep_start_hour"`
	SleepEndHour          int           `mapstructure:"sleep_end_hour"`
}

// Rates combina el balance con los umbrales fijos del motor.
func (b BalanceConfig) Rates() stats.Rates {
	r := stats.DefaultRates()
	r.HungerPerHour = b.HungerPerHour
	r.HappinessPerHour = b.HappinessPerHour
	r.EnergyDecayPerHour = b.EnergyDecayPerHour
	r.EnergyRecoveryPerHour = b.EnergyRecoveryPerHour
	r.HealthPerHour = b.HealthPerHour
	r.GraceMultiplier = b.GraceMultiplier
	r.GracePeriod = b.GracePeriod
	r.SleepStartHour = b.SleepStartHour
	r.SleepEndHour = b.SleepEndHour
	return r
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Sweeper  SweeperConfig  `mapstructure:"sweeper"`
	Balance  BalanceConfig  `mapstructure:"balance"`
}

// Validate devuelve todas las violaciones juntas, no sólo la primera.
func (c Config) Validate() error {
	var errs []string

	for _, err := range []error{
		validateServer(c.Server),
		validateDatabase(c.Database),
		validateAuth(c.Auth),
		validateLogging(c.Logging),
		validateSweeper(c.Sweeper),
		validateBalance(c.Balance),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}
	return joined(errs)
}

func validateDatabase(d DatabaseConfig) error {
	if strings.TrimSpace(d.DSN) == "" {
		return nil
	}
	var errs []string
	if d.MaxOpenConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_open_conns must be >= 1, got %d", d.MaxOpenConns))
	}
	if d.MaxIdleConns < 0 {
		errs = append(errs, fmt.Sprintf("database.max_idle_conns must be >= 0, got %d", d.MaxIdleConns))
	}
	if d.MaxIdleConns > d.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns must not exceed database.max_open_conns")
	}
	return joined(errs)
}

func validateAuth(a AuthConfig) error {
	if !a.Enabled() {
		return nil
	}
	if strings.TrimSpace(a.APIKey) == "" {
		return errors.New("auth.api_key is required when auth.base_url is set")
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console, text], got %q", l.Format)
	}
	return nil
}

func validateSweeper(s SweeperConfig) error {
	var errs []string
	if s.Enabled && s.Interval < time.Minute {
		errs = append(errs, fmt.Sprintf("sweeper.interval must be >= 1m when enabled, got %s", s.Interval))
	}
	if s.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("sweeper.concurrency must be >= 1, got %d", s.Concurrency))
	}
	return joined(errs)
}

func validateBalance(b BalanceConfig) error {
	var errs []string
	rates := map[string]float64{
		"hunger_per_hour":          b.HungerPerHour,
		"happiness_per_hour":       b.HappinessPerHour,
		"energy_decay_per_hour":    b.EnergyDecayPerHour,
		"energy_recovery_per_hour": b.EnergyRecoveryPerHour,
		"health_per_hour":          b.HealthPerHour,
	}
	for _, name := range []string{"hunger_per_hour", "happiness_per_hour", "energy_decay_per_hour", "energy_recovery_per_hour", "health_per_hour"} {
		if rates[name] < 0 {
			errs = append(errs, fmt.Sprintf("balance.%s must not be negative", name))
		}
	}
	if b.GraceMultiplier < 0 || b.GraceMultiplier > 1 {
		errs = append(errs, fmt.Sprintf("balance.grace_multiplier must be within [0,1], got %g", b.GraceMultiplier))
	}
	if b.GracePeriod < 0 {
		errs = append(errs, "balance.grace_period must not be negative")
	}
	if b.SleepStartHour < 0 || b.SleepStartHour > 23 || b.SleepEndHour < 0 || b.SleepEndHour > 23 {
		errs = append(errs, "balance.sleep_start_hour and balance.sleep_end_hour must be within [0,23]")
	}
	return joined(errs)
}

func joined(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, "; "))
}

// Load lee path (puede ser vacío), aplica overrides de entorno y valida.
// Además de VPET_<SECCION>_<CLAVE> se respetan PORT, DB_DSN, LOG_LEVEL, LOG_FORMAT y APP_NAME.
func Load(path string) (Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// New devuelve un Viper con defaults y bindings de entorno, sin archivo.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("VPET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nombres legacy del despliegue anterior.
	_ = v.BindEnv("server.port", "VPET_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.dsn", "VPET_DATABASE_DSN", "DB_DSN")
	_ = v.BindEnv("logging.level", "VPET_LOGGING_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "VPET_LOGGING_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("logging.app", "VPET_LOGGING_APP", "APP_NAME")

	setDefaults(v)
	return v
}

func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.swagger", true)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("auth.base_url", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.api_key_header", "X-Api-Key")
	v.SetDefault("auth.verify_path", "/v1/tokens/verify")
	v.SetDefault("auth.timeout", "5s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.app", "virtual-pet")

	// El resultado no depende del intervalo; 1h alcanza para detectar Critical a tiempo.
	v.SetDefault("sweeper.enabled", true)
	v.SetDefault("sweeper.interval", "1h")
	v.SetDefault("sweeper.concurrency", 4)

	d := stats.DefaultRates()
	v.SetDefault("balance.hunger_per_hour", d.HungerPerHour)
	v.SetDefault("balance.happiness_per_hour", d.HappinessPerHour)
	v.SetDefault("balance.energy_decay_per_hour", d.EnergyDecayPerHour)
	v.SetDefault("balance.energy_recovery_per_hour", d.EnergyRecoveryPerHour)
	v.SetDefault("balance.health_per_hour", d.HealthPerHour)
	v.SetDefault("balance.grace_multiplier", d.GraceMultiplier)
	v.SetDefault("balance.grace_period", d.GracePeriod.String())
	v.SetDefault("balance.sleep_start_hour", d.SleepStartHour)
	v.SetDefault("balance.sleep_end_hour", d.SleepEndHour)
}
