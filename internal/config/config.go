package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/weatherlyhq/weatherly/internal/pkg/timex"
)

type Server struct {
	URL             string         `json:"url,omitempty"`
	Port            int            `json:"port,omitempty"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
}

type JWT struct {
	JTILength  uint32         `json:"jti_length,omitempty"`
	Issuer     string         `json:"issuer,omitempty"`
	TTL        timex.Duration `json:"ttl,omitempty"`
	RefreshTTL timex.Duration `json:"refresh_ttl,omitempty"`
}

type Cookie struct {
	Name   string         `json:"name,omitempty"`
	MaxAge timex.Duration `json:"max_age,omitempty"`
}

type Email struct {
	Sender string `json:"sender,omitempty"`
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type Weather struct {
	BaseURL string         `json:"base_url,omitempty"`
	Timeout timex.Duration `json:"timeout,omitempty"`
	Key     string         `json:"-"`
}

type Identity struct {
	BaseURL string         `json:"base_url,omitempty"`
	Timeout timex.Duration `json:"timeout,omitempty"`
}

type Sweep struct {
	Interval        timex.Duration `json:"interval,omitempty"`
	DefaultTimezone string         `json:"default_timezone,omitempty"`
	Workers         int            `json:"workers,omitempty"`
}

type Config struct {
	Server   *Server   `json:"server,omitempty"`
	DB       *DB       `json:"db,omitempty"`
	JWT      *JWT      `json:"jwt,omitempty"`
	Cookie   *Cookie   `json:"cookie,omitempty"`
	Email    *Email    `json:"email,omitempty"`
	Argon2   *Argon2   `json:"argon2,omitempty"`
	Weather  *Weather  `json:"weather,omitempty"`
	Identity *Identity `json:"identity,omitempty"`
	Sweep    *Sweep    `json:"sweep,omitempty"`
	SMTP     *SMTP     `json:"-"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("server", c.Server),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("cookie", c.Cookie),
		slog.Any("email", c.Email),
		slog.Any("weather", c.Weather),
		slog.Any("identity", c.Identity),
		slog.Any("sweep", c.Sweep),
	)
}

const (
	envWeatherKey = "WEATHER_API_KEY"
	envSMTPHost   = "SMTP_HOST"
	envSMTPPort   = "SMTP_PORT"
	envSMTPUser   = "SMTP_USER"
	envSMTPPass   = "SMTP_PASS"
)

func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseCfgFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseCfgFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	contents, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := json.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return &cfg, nil
}

func overrideWithEnv(cfg *Config) error {
	if cfg.Server != nil {
		if url, ok := os.LookupEnv("URL"); ok {
			cfg.Server.URL = url
		}

		if portStr, ok := os.LookupEnv("PORT"); ok {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return fmt.Errorf("parse PORT: %w", err)
			}
			cfg.Server.Port = port
		}
	}

	if cfg.Weather != nil {
		key, ok := os.LookupEnv(envWeatherKey)
		if !ok {
			return errors.New(message(envWeatherKey))
		}
		cfg.Weather.Key = key
	}

	// SMTP credentials are only needed by binaries that send mail,
	// signalled by the presence of the email section.
	if cfg.Email != nil {
		smtpCfg, err := smtpFromEnv()
		if err != nil {
			return err
		}
		cfg.SMTP = smtpCfg
	}

	return nil
}

func smtpFromEnv() (*SMTP, error) {
	host, ok := os.LookupEnv(envSMTPHost)
	if !ok {
		return nil, errors.New(message(envSMTPHost))
	}

	portStr, ok := os.LookupEnv(envSMTPPort)
	if !ok {
		return nil, errors.New(message(envSMTPPort))
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", envSMTPPort, err)
	}

	user, ok := os.LookupEnv(envSMTPUser)
	if !ok {
		return nil, errors.New(message(envSMTPUser))
	}

	pass, ok := os.LookupEnv(envSMTPPass)
	if !ok {
		return nil, errors.New(message(envSMTPPass))
	}

	return &SMTP{
		Host:     host,
		Port:     port,
		User:     user,
		Password: pass,
	}, nil
}

func message(envVar string) string {
	return "environment variable is not set: " + envVar
}
