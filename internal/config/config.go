package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del servicio.
// Se carga una sola vez al inicio y se inyecta explícitamente; ningún
// componente la busca de forma ambiente.
type Config struct {
	App struct {
		// dev | staging | prod
		Env  string `yaml:"env"`
		Name string `yaml:"name"`
		// Domain se usa como issuer de los tokens.
		Domain string `yaml:"domain"`
		// DefaultTimezone en forma ±HH:MM (ej: +05:30).
		DefaultTimezone string `yaml:"default_timezone"`
	} `yaml:"app"`

	Server struct {
		Addr         string `yaml:"addr"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`

	Storage struct {
		// Driver: "postgres" | "memory"
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// Kind: "memory" | "redis"
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		// Algorithm soportado: HS256.
		Algorithm string `yaml:"algorithm"`
		Secret    string `yaml:"secret"`
		// AuthTTL/UnauthTTL: validez de tokens autenticados y anónimos.
		AuthTTL   string `yaml:"auth_ttl"`
		UnauthTTL string `yaml:"unauth_ttl"`
	} `yaml:"jwt"`

	Security struct {
		// AuthKey autoriza la emisión de tokens en producción.
		AuthKey string `yaml:"auth_key"`
		// MochaKey es la clave reservada para la audiencia de test "mocha".
		MochaKey string `yaml:"mocha_key"`
	} `yaml:"security"`

	Digits struct {
		// ConsumerKey esperado dentro del header de credenciales firmadas.
		ConsumerKey string `yaml:"consumer_key"`
		// AllowedHosts: hostnames reconocidos del provider.
		AllowedHosts []string `yaml:"allowed_hosts"`
		// VerifyTimeout del request saliente al provider.
		VerifyTimeout string `yaml:"verify_timeout"`
		// CacheTTL de verificaciones exitosas (0 = sin cache).
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"digits"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Login   struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`

	Alerts struct {
		// Enabled activa mails de alerta ante uso inválido de claves de emisión.
		Enabled bool   `yaml:"enabled"`
		To      string `yaml:"to"`
		SMTP    struct {
			Host               string `yaml:"host"`
			Port               int    `yaml:"port"`
			Username           string `yaml:"username"`
			Password           string `yaml:"password"`
			From               string `yaml:"from"`
			TLS                string `yaml:"tls"` // auto | starttls | ssl | none
			InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
		} `yaml:"smtp"`
	} `yaml:"alerts"`
}

// Load lee el YAML, aplica overrides de entorno y valida.
func Load(path string) (*Config, error) {
	var c Config
	c.applyDefaults()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	c.App.Env = "dev"
	c.App.Name = "authd"
	c.App.Domain = "praphull.com"
	c.App.DefaultTimezone = "+05:30"
	c.Server.Addr = ":3000"
	c.Server.ReadTimeout = "10s"
	c.Server.WriteTimeout = "30s"
	c.Storage.Driver = "memory"
	c.Cache.Kind = "memory"
	c.Cache.Memory.DefaultTTL = "5m"
	c.JWT.Algorithm = "HS256"
	c.JWT.AuthTTL = "720h"
	c.JWT.UnauthTTL = "24h"
	c.Digits.AllowedHosts = []string{"api.digits.com", "api.twitter.com"}
	c.Digits.VerifyTimeout = "10s"
	c.Digits.CacheTTL = "0"
	c.Rate.Login.Limit = 30
	c.Rate.Login.Window = "1m"
}

// Validate chequea lo mínimo para poder arrancar.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret is required")
	}
	if !strings.EqualFold(c.JWT.Algorithm, "HS256") {
		return fmt.Errorf("config: unsupported jwt.algorithm %q", c.JWT.Algorithm)
	}
	if c.Security.AuthKey == "" {
		return fmt.Errorf("config: security.auth_key is required")
	}
	if c.App.Domain == "" {
		return fmt.Errorf("config: app.domain is required")
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return fmt.Errorf("config: storage.dsn is required for driver postgres")
	}
	if len(c.Digits.AllowedHosts) == 0 {
		return fmt.Errorf("config: digits.allowed_hosts must not be empty")
	}
	for _, f := range []struct {
		name, val string
	}{
		{"jwt.auth_ttl", c.JWT.AuthTTL},
		{"jwt.unauth_ttl", c.JWT.UnauthTTL},
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"digits.verify_timeout", c.Digits.VerifyTimeout},
	} {
		if _, err := time.ParseDuration(f.val); err != nil {
			return fmt.Errorf("config: %s: %w", f.name, err)
		}
	}
	return nil
}

// ---- Accessors de duraciones ----

func (c *Config) AuthTokenTTL() time.Duration    { return mustDur(c.JWT.AuthTTL, 720*time.Hour) }
func (c *Config) UnauthTokenTTL() time.Duration  { return mustDur(c.JWT.UnauthTTL, 24*time.Hour) }
func (c *Config) ReadTimeout() time.Duration     { return mustDur(c.Server.ReadTimeout, 10*time.Second) }
func (c *Config) WriteTimeout() time.Duration    { return mustDur(c.Server.WriteTimeout, 30*time.Second) }
func (c *Config) DigitsTimeout() time.Duration   { return mustDur(c.Digits.VerifyTimeout, 10*time.Second) }
func (c *Config) DigitsCacheTTL() time.Duration  { return mustDur(c.Digits.CacheTTL, 0) }
func (c *Config) RateLoginWindow() time.Duration { return mustDur(c.Rate.Login.Window, time.Minute) }
func (c *Config) CacheMemoryTTL() time.Duration  { return mustDur(c.Cache.Memory.DefaultTTL, 5*time.Minute) }

func mustDur(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
		return d
	}
	return def
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, len(out) > 0
	}
	return nil, false
}

// applyEnvOverrides pisa el YAML con variables de entorno AUTHD_*.
// Los secretos normalmente llegan por acá y no por archivo.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("AUTHD_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("AUTHD_STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("AUTHD_STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("AUTHD_CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("AUTHD_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("AUTHD_REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("AUTHD_REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("AUTHD_JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("AUTHD_AUTH_KEY"); ok {
		c.Security.AuthKey = v
	}
	if v, ok := getEnvStr("AUTHD_MOCHA_KEY"); ok {
		c.Security.MochaKey = v
	}
	if v, ok := getEnvStr("AUTHD_DIGITS_CONSUMER_KEY"); ok {
		c.Digits.ConsumerKey = v
	}
	if v, ok := getEnvCSV("AUTHD_DIGITS_ALLOWED_HOSTS"); ok {
		c.Digits.AllowedHosts = v
	}
	if v, ok := getEnvBool("AUTHD_RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvBool("AUTHD_ALERTS_ENABLED"); ok {
		c.Alerts.Enabled = v
	}
	if v, ok := getEnvStr("AUTHD_SMTP_PASSWORD"); ok {
		c.Alerts.SMTP.Password = v
	}
}
