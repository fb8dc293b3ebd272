package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	APIBaseURL         string        `yaml:"api_base_url" validate:"required,url"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	TimeZone           string        `yaml:"time_zone"`
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	Cache              Cache         `yaml:"cache"`
	Breaker            Breaker       `yaml:"breaker"`
}

// Cache configures the profile list response cache. An empty RedisAddr keeps it in memory.
type Cache struct {
	TTL       time.Duration `yaml:"ttl"`
	RedisAddr string        `yaml:"redis_addr"`
	RedisDB   int           `yaml:"redis_db"`
}

// Breaker configures the circuit breaker in front of the backend API.
type Breaker struct {
	MaxFailures uint32        `yaml:"max_failures"`
	OpenTimeout time.Duration `yaml:"open_timeout"`
}

type Private struct {
	JwtKey        string `yaml:"jwt_key" validate:"required"`
	RedisPassword string `yaml:"redis_password"`
}

const (
	defaultRequestTimeout = 10 * time.Second
	defaultTimeZone       = "Asia/Jakarta"
	defaultCacheTTL       = 30 * time.Second
	defaultMaxFailures    = 5
	defaultOpenTimeout    = 30 * time.Second
)

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) RedisPassword() string {
	return s.private.RedisPassword
}

// Location resolves TimeZone, falling back to UTC when the zone database lacks it.
func (p Public) Location() *time.Location {
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (p *Public) applyDefaults() {
	if p.RequestTimeout <= 0 {
		p.RequestTimeout = defaultRequestTimeout
	}
	if p.TimeZone == "" {
		p.TimeZone = defaultTimeZone
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.Cache.TTL <= 0 {
		p.Cache.TTL = defaultCacheTTL
	}
	if p.Breaker.MaxFailures == 0 {
		p.Breaker.MaxFailures = defaultMaxFailures
	}
	if p.Breaker.OpenTimeout <= 0 {
		p.Breaker.OpenTimeout = defaultOpenTimeout
	}
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath + ": " + err.Error())
	}
}

func mustValidate(v any) {
	if err := validator.New().Struct(v); err != nil {
		panic("invalid config: " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()
	mustValidate(public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	mustValidate(private)

	return &Config{public, private}
}
