package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	API      APIConfig
	Assets   AssetConfig
	Session  SessionConfig
	CORS     CORSConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// APIConfig points at the remote catalog REST API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AssetConfig controls how stored image paths become displayable URLs
type AssetConfig struct {
	BaseURL     string
	StripPrefix string
}

// SessionConfig selects where the operator's bearer token is kept
type SessionConfig struct {
	Backend      string
	CookieName   string
	TTL          time.Duration
	SecureCookie bool
	// Secret signs the session cookie. Empty means a random key per process.
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

const (
	SessionBackendCookie   = "cookie"
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return fromViper()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("API_BASE_URL", "http://localhost:4000/api")
	viper.SetDefault("API_TIMEOUT", "10s")
	viper.SetDefault("ASSET_BASE_URL", "")
	viper.SetDefault("ASSET_STRIP_PREFIX", "/src")
	viper.SetDefault("SESSION_BACKEND", SessionBackendCookie)
	viper.SetDefault("SESSION_COOKIE_NAME", "token")
	viper.SetDefault("SESSION_TTL", "720h")
	viper.SetDefault("SESSION_SECURE_COOKIE", false)
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
}

func fromViper() *Config {
	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(viper.GetString("API_BASE_URL"), "/"),
			Timeout: viper.GetDuration("API_TIMEOUT"),
		},
		Assets: AssetConfig{
			BaseURL:     strings.TrimRight(viper.GetString("ASSET_BASE_URL"), "/"),
			StripPrefix: viper.GetString("ASSET_STRIP_PREFIX"),
		},
		Session: SessionConfig{
			Backend:      strings.ToLower(viper.GetString("SESSION_BACKEND")),
			CookieName:   viper.GetString("SESSION_COOKIE_NAME"),
			TTL:          viper.GetDuration("SESSION_TTL"),
			SecureCookie: viper.GetBool("SESSION_SECURE_COOKIE"),
			Secret:       viper.GetString("SESSION_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
	}
}

// IsDevelopment reports whether the server runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
