package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Secreto usado sólo fuera de producción cuando JWT_SECRET no está definido.
const devJWTSecret = "taskstore-dev-secret-change-me"

// ErrMissingJWTSecret se devuelve en producción si JWT_SECRET está vacío.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET es obligatorio en producción")

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Seed      SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	FrontendURL string // origen permitido por CORS y base de los enlaces de reset
	DocsEnabled bool
}

// IsProduction indica si la app corre en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// DBConfig configuración de persistencia.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret            string
	Expiration        int // minutos
	Issuer            string
	ResetTokenMinutes int
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig límites de peticiones: ventana fija global y throttle de auth por IP.
type RateLimitConfig struct {
	Max           int
	WindowMinutes int
	AuthPerMinute int
	AuthBurst     int
}

// Window devuelve la ventana del limitador global.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

// RedisConfig almacenamiento compartido del limitador. URL vacía = memoria local.
type RedisConfig struct {
	URL string
}

// SeedConfig cuenta demo creada al arrancar.
type SeedConfig struct {
	DemoAdmin         bool
	DemoAdminEmail    string
	DemoAdminPassword string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := getString(v, "APP_ENV", "development")
	cfg := &Config{
		App: AppConfig{
			Env:         env,
			Name:        getString(v, "APP_NAME", "taskstore-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			FrontendURL: getString(v, "FRONTEND_URL", "http://localhost:4200"),
			DocsEnabled: getBool(v, "DOCS_ENABLED", env != "production"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", "postgres")),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "taskstore"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:            getString(v, "JWT_SECRET", ""),
			Expiration:        getInt(v, "JWT_EXPIRATION_MINUTES", 7*24*60),
			Issuer:            getString(v, "JWT_ISSUER", "taskstore-api"),
			ResetTokenMinutes: getInt(v, "RESET_TOKEN_MINUTES", 60),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		RateLimit: RateLimitConfig{
			Max:           getInt(v, "RATE_LIMIT_MAX", 100),
			WindowMinutes: getInt(v, "RATE_LIMIT_WINDOW_MINUTES", 15),
			AuthPerMinute: getInt(v, "AUTH_RATE_PER_MINUTE", 10),
			AuthBurst:     getInt(v, "AUTH_RATE_BURST", 5),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
		},
		Seed: SeedConfig{
			DemoAdmin:         getBool(v, "SEED_DEMO_ADMIN", true),
			DemoAdminEmail:    getString(v, "DEMO_ADMIN_EMAIL", "demo@example.com"),
			DemoAdminPassword: getString(v, "DEMO_ADMIN_PASSWORD", "password123"),
		},
	}

	if cfg.JWT.Secret == "" {
		if cfg.App.IsProduction() {
			return nil, ErrMissingJWTSecret
		}
		cfg.JWT.Secret = devJWTSecret
	}
	return cfg, nil
}

// UsingDevSecret indica si se cayó al secreto de desarrollo.
func (c *Config) UsingDevSecret() bool {
	return c.JWT.Secret == devJWTSecret
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
