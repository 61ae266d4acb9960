package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	HTTP       HTTPConfig
	Upload     UploadConfig
	SecureFile SecureFileConfig
	Paystack   PaystackConfig
	Security   SecurityConfig
	Redis      RedisConfig
	Log        LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env            string // development, staging, production
	Name           string
	StoreDriver    string // postgres | memory
	SwaggerEnabled bool
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int
	ConnectTimeout time.Duration
	AutoMigrate    bool
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UploadConfig directorio de contenido y límite de tamaño de las imágenes subidas.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// SecureFileConfig firma de tokens de descarga por archivo.
// IssuerKey es el secreto que permite emitir tokens; TokenSecret firma los tokens (HS256).
type SecureFileConfig struct {
	IssuerKey   string
	TokenSecret string
	TokenTTL    time.Duration
	Issuer      string
}

// PaystackConfig pasarela de pagos.
type PaystackConfig struct {
	SecretKey   string
	BaseURL     string
	Currency    string
	CallbackURL string
}

// SecurityConfig costo de bcrypt.
type SecurityConfig struct {
	BcryptCost int
}

// RedisConfig caché de idempotencia. Addr vacío = deshabilitado.
type RedisConfig struct {
	Addr           string
	Password       string
	IdempotencyTTL time.Duration
}

// LogConfig nivel y archivo opcional (rotado con lumberjack).
type LogConfig struct {
	Level string
	File  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, PORT, PAYSTACK_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:            getString(v, "APP_ENV", "development"),
			Name:           getString(v, "APP_NAME", "naimarket-api"),
			StoreDriver:    strings.ToLower(getString(v, "STORE_DRIVER", "postgres")),
			SwaggerEnabled: getBool(v, "SWAGGER_ENABLED", false),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "naimarket_db"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MaxConns:       getInt(v, "DB_MAX_CONNS", 10),
			ConnectTimeout: time.Duration(getInt(v, "DB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
			AutoMigrate:    getBool(v, "DB_AUTO_MIGRATE", false),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "PORT", 5000),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Upload: UploadConfig{
			Dir:      getString(v, "UPLOAD_DIR", "uploads"),
			MaxBytes: int64(getInt(v, "UPLOAD_MAX_BYTES", 2*1024*1024)),
		},
		SecureFile: SecureFileConfig{
			IssuerKey:   getString(v, "SECURE_FILE_ISSUER_KEY", ""),
			TokenSecret: getString(v, "FILE_TOKEN_SECRET", ""),
			TokenTTL:    time.Duration(getInt(v, "FILE_TOKEN_TTL_MINUTES", 15)) * time.Minute,
			Issuer:      getString(v, "FILE_TOKEN_ISSUER", "naimarket-api"),
		},
		Paystack: PaystackConfig{
			SecretKey:   getString(v, "PAYSTACK_SECRET", ""),
			BaseURL:     getString(v, "PAYSTACK_BASE_URL", "https://api.paystack.co"),
			Currency:    strings.ToUpper(getString(v, "PAYSTACK_CURRENCY", "KES")),
			CallbackURL: getString(v, "PAYSTACK_CALLBACK_URL", "http://localhost:3000/payment-success"),
		},
		Security: SecurityConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
		Redis: RedisConfig{
			Addr:           getString(v, "REDIS_ADDR", ""),
			Password:       getString(v, "REDIS_PASSWORD", ""),
			IdempotencyTTL: time.Duration(getInt(v, "IDEMPOTENCY_TTL_HOURS", 24)) * time.Hour,
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
			File:  getString(v, "LOG_FILE", ""),
		},
	}

	if cfg.App.StoreDriver != "postgres" && cfg.App.StoreDriver != "memory" {
		return nil, fmt.Errorf("config: STORE_DRIVER inválido %q (postgres|memory)", cfg.App.StoreDriver)
	}
	if cfg.Upload.MaxBytes <= 0 {
		return nil, fmt.Errorf("config: UPLOAD_MAX_BYTES debe ser positivo")
	}
	return cfg, nil
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
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
