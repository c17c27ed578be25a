package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort           = "3000"
	DefaultWAHAURL        = "http://waha:3000/api/sendText"
	DefaultWAHASession    = "default"
	DefaultDebugLogFile   = "debug.log"
	DefaultForwardTimeout = 30 * time.Second
)

// Config é montada uma vez no startup e não muda depois disso.
type Config struct {
	Port        string
	WAHAURL     string
	WAHASession string

	// APIKey protege o /send. Vazio deixa o endpoint aberto.
	APIKey string
	// WAHAAPIKey é o último fallback da credencial enviada ao WAHA.
	WAHAAPIKey string

	DebugLogFile   string
	ForwardTimeout time.Duration

	MetricsEnabled     bool
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", DefaultPort),
		WAHAURL:            getEnv("WAHA_URL", DefaultWAHAURL),
		WAHASession:        getEnv("WAHA_SESSION", DefaultWAHASession),
		APIKey:             os.Getenv("API_KEY"),
		WAHAAPIKey:         os.Getenv("WAHA_API_KEY"),
		DebugLogFile:       getEnv("DEBUG_LOG_FILE", DefaultDebugLogFile),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	timeout, err := getEnvAsDuration("FORWARD_TIMEOUT", DefaultForwardTimeout)
	if err != nil {
		return nil, err
	}
	cfg.ForwardTimeout = timeout

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.WAHAURL)
	if err != nil {
		return fmt.Errorf("WAHA_URL inválida: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WAHA_URL precisa ser absoluta: %q", c.WAHAURL)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT inválida: %q", c.Port)
	}
	if c.ForwardTimeout < 0 {
		return fmt.Errorf("FORWARD_TIMEOUT não pode ser negativo: %s", c.ForwardTimeout)
	}
	return nil
}

// Addr devolve o endereço de escuta no formato do http.Server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DebugLogEnabled é falso quando DEBUG_LOG_FILE vem vazio ou "-".
func (c *Config) DebugLogEnabled() bool {
	return c.DebugLogFile != "" && c.DebugLogFile != "-"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}

func getEnvAsList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
