// Package config resuelve la configuración del servicio y de la CLI.
// Orden (gana el último): defaults < archivo JSON (CONFIG_FILE) < variables de entorno.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort         = "8080"
	DefaultAppName      = "pet-care-insights"
	DefaultTimezone     = "UTC"
	DefaultUpstreamRate = 10.0 // req/s hacia Odin y plans-features

	EnvConfigFile = "CONFIG_FILE"
)

// File es la representación en disco (todas las keys opcionales).
type File struct {
	Port      string `json:"port"`
	DBDSN     string `json:"db_dsn"`
	BoltPath  string `json:"bolt_path"`
	Timezone  string `json:"timezone"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	LogFile   string `json:"log_file"`
	AppName   string `json:"app_name"`

	OdinBaseURL  string `json:"odin_base_url"`
	OdinAPIKey   string `json:"odin_api_key"`
	PlansBaseURL string `json:"plans_base_url"`
	PlansAPIKey  string `json:"plans_api_key"`

	AllowAllCapabilities *bool   `json:"allow_all_capabilities"`
	UpstreamRate         float64 `json:"upstream_rate"`
}

// Config es la configuración ya resuelta.
type Config struct {
	Port      string
	DBDSN     string
	BoltPath  string
	Timezone  *time.Location
	LogLevel  string
	LogFormat string
	LogFile   string
	AppName   string

	OdinBaseURL  string
	OdinAPIKey   string
	PlansBaseURL string
	PlansAPIKey  string

	AllowAllCapabilities bool
	UpstreamRate         float64

	// ConfigPath es el archivo leído (vacío si no hubo).
	ConfigPath string
}

func defaults() Config {
	return Config{
		Port:         DefaultPort,
		Timezone:     time.UTC,
		LogLevel:     "info",
		LogFormat:    "text",
		AppName:      DefaultAppName,
		UpstreamRate: DefaultUpstreamRate,
	}
}

// Load lee CONFIG_FILE (si está) y el entorno.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(getenv(EnvConfigFile)); path != "" {
		f, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := applyFile(&cfg, f); err != nil {
			return Config{}, err
		}
		cfg.ConfigPath = path
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading config file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return f, nil
}

func applyFile(cfg *Config, f File) error {
	setString(&cfg.Port, f.Port)
	setString(&cfg.DBDSN, f.DBDSN)
	setString(&cfg.BoltPath, f.BoltPath)
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.LogFormat, f.LogFormat)
	setString(&cfg.LogFile, f.LogFile)
	setString(&cfg.AppName, f.AppName)
	setString(&cfg.OdinBaseURL, f.OdinBaseURL)
	setString(&cfg.OdinAPIKey, f.OdinAPIKey)
	setString(&cfg.PlansBaseURL, f.PlansBaseURL)
	setString(&cfg.PlansAPIKey, f.PlansAPIKey)

	if f.AllowAllCapabilities != nil {
		cfg.AllowAllCapabilities = *f.AllowAllCapabilities
	}
	if f.UpstreamRate > 0 {
		cfg.UpstreamRate = f.UpstreamRate
	}
	if tz := strings.TrimSpace(f.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("timezone %q: %w", tz, err)
		}
		cfg.Timezone = loc
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString(&cfg.Port, getenv("PORT"))
	setString(&cfg.DBDSN, getenv("DB_DSN"))
	setString(&cfg.BoltPath, getenv("BOLT_PATH"))
	setString(&cfg.LogLevel, getenv("LOG_LEVEL"))
	setString(&cfg.LogFormat, getenv("LOG_FORMAT"))
	setString(&cfg.LogFile, getenv("LOG_FILE"))
	setString(&cfg.AppName, getenv("APP_NAME"))
	setString(&cfg.OdinBaseURL, getenv("ODIN_BASE_URL"))
	setString(&cfg.OdinAPIKey, getenv("ODIN_API_KEY"))
	setString(&cfg.PlansBaseURL, getenv("PLANS_BASE_URL"))
	setString(&cfg.PlansAPIKey, getenv("PLANS_API_KEY"))

	if v := strings.TrimSpace(getenv("ALLOW_ALL_CAPABILITIES")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALLOW_ALL_CAPABILITIES: %w", err)
		}
		cfg.AllowAllCapabilities = b
	}
	if v := strings.TrimSpace(getenv("UPSTREAM_RATE")); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			return fmt.Errorf("UPSTREAM_RATE must be a positive number, got %q", v)
		}
		cfg.UpstreamRate = r
	}
	if tz := strings.TrimSpace(getenv("TIMEZONE")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("TIMEZONE %q: %w", tz, err)
		}
		cfg.Timezone = loc
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Addr es la dirección de escucha del servidor HTTP.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Clock devuelve el reloj que se inyecta en los servicios, en la zona configurada.
// Las etiquetas "Today/Tomorrow" dependen de esta zona.
func (c Config) Clock() func() time.Time {
	loc := c.Timezone
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}
