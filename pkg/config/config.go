package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jhoicas/rectificadora-api/pkg/retry"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	Auth    AuthConfig
	HTTP    HTTPConfig
	Taller  TallerConfig
	SMTP    SMTPConfig
	Retry   RetryConfig
	Swagger bool
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// Motores de almacenamiento soportados.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Storage     string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	Migrate     bool // aplicar migraciones embebidas al iniciar
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
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig credenciales del usuario del taller (aplicación de un solo inquilino).
type AuthConfig struct {
	Enabled      bool
	User         string
	PasswordHash string // bcrypt
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host      string
	Port      int
	BodyLimit int // bytes; las fotos viajan como data URI
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TallerConfig datos del negocio usados en resúmenes y exportaciones.
type TallerConfig struct {
	Nombre        string
	TasaIVA       string // decimal, ej. "0.19"
	CodigoPais    string // prefijo para enlaces de WhatsApp
	ExportDir     string // PDFs generados
	ExportTTL     time.Duration
	ExportCleanup time.Duration
	LogoPath      string
}

// SMTPConfig envío de PDFs por correo. Host vacío = deshabilitado.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled indica si hay servidor SMTP configurado.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

// RetryConfig backoff para lecturas de motores ante fallas de conexión.
type RetryConfig struct {
	Initial    time.Duration
	Multiplier float64
	Max        time.Duration
	MaxRetries int
}

// Policy convierte la configuración en la política de backoff.
func (c RetryConfig) Policy() retry.Policy {
	return retry.Policy{Initial: c.Initial, Multiplier: c.Multiplier, Max: c.Max, MaxRetries: c.MaxRetries}
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, STORAGE, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "rectificadora-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Storage:     strings.ToLower(getString(v, "STORAGE", StoragePostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "rectificadora"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "rectificadora-api"),
		},
		Auth: AuthConfig{
			Enabled:      getBool(v, "AUTH_ENABLED", false),
			User:         getString(v, "AUTH_USER", "taller"),
			PasswordHash: getString(v, "AUTH_PASSWORD_HASH", ""),
		},
		HTTP: HTTPConfig{
			Host:      getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:      getInt(v, "HTTP_PORT", 5000),
			BodyLimit: getInt(v, "HTTP_BODY_LIMIT", 50*1024*1024),
		},
		Taller: TallerConfig{
			Nombre:        getString(v, "TALLER_NOMBRE", "Rectificadora Santofimio"),
			TasaIVA:       getString(v, "TALLER_TASA_IVA", "0.19"),
			CodigoPais:    getString(v, "TALLER_CODIGO_PAIS", "57"),
			ExportDir:     getString(v, "TALLER_EXPORT_DIR", "temp_pdfs"),
			ExportTTL:     getDuration(v, "TALLER_EXPORT_TTL", 24*time.Hour),
			ExportCleanup: getDuration(v, "TALLER_EXPORT_CLEANUP", time.Hour),
			LogoPath:      getString(v, "TALLER_LOGO_PATH", ""),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", ""),
		},
		Retry: RetryConfig{
			Initial:    getDuration(v, "RETRY_INITIAL", 500*time.Millisecond),
			Multiplier: getFloat(v, "RETRY_MULTIPLIER", 1.5),
			Max:        getDuration(v, "RETRY_MAX", 5*time.Second),
			MaxRetries: getInt(v, "RETRY_MAX_RETRIES", 12),
		},
		Swagger: getBool(v, "SWAGGER_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: STORAGE inválido %q (postgres|memory)", c.DB.Storage)
	}
	if c.Auth.Enabled && (c.JWT.Secret == "" || c.Auth.PasswordHash == "") {
		return fmt.Errorf("config: AUTH_ENABLED requiere JWT_SECRET y AUTH_PASSWORD_HASH")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("config: RETRY_MAX_RETRIES no puede ser negativo")
	}
	return nil
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if !v.IsSet(key) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil {
		return def
	}
	return f
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return d
}
