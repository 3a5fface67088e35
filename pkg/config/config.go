package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers del almacén de documentos remoto.
const (
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
)

// Drivers del almacén local de preferencias.
const (
	PrefsBolt   = "bolt"
	PrefsRedis  = "redis"
	PrefsMemory = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Store     StoreConfig
	DB        DBConfig
	Firestore FirestoreConfig
	Prefs     PrefsConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Seed      SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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

// StoreConfig selecciona el almacén de documentos (memory, postgres, firestore).
type StoreConfig struct {
	Driver string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// FirestoreConfig proyecto y credenciales del backend Firebase.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string // vacío = Application Default Credentials
}

// PrefsConfig almacén local de preferencias (tema, configuración, sesión).
type PrefsConfig struct {
	Driver string
	Path   string // archivo bbolt
}

// RedisConfig conexión para el driver de preferencias redis.
type RedisConfig struct {
	URL      string
	Address  string
	Password string
	DB       int
	Prefix   string
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SeedConfig usuario administrador inicial para el repositorio de usuarios en memoria.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, PREFS_DRIVER, JWT_SECRET, etc.
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

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "biciros"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreMemory)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "biciros"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Firestore: FirestoreConfig{
			ProjectID:       getString(v, "FIRESTORE_PROJECT_ID", ""),
			CredentialsFile: getString(v, "FIRESTORE_CREDENTIALS_FILE", ""),
		},
		Prefs: PrefsConfig{
			Driver: strings.ToLower(getString(v, "PREFS_DRIVER", PrefsBolt)),
			Path:   getString(v, "PREFS_PATH", "biciros-prefs.db"),
		},
		Redis: RedisConfig{
			URL:      getString(v, "REDIS_URL", ""),
			Address:  getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "REDIS_PREFIX", "biciros"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*30),
			Issuer:     getString(v, "JWT_ISSUER", "biciros"),
		},
		Seed: SeedConfig{
			AdminEmail:    getString(v, "SEED_ADMIN_EMAIL", ""),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", ""),
			AdminName:     getString(v, "SEED_ADMIN_NAME", "Administrador"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory, StorePostgres:
	case StoreFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("config: FIRESTORE_PROJECT_ID requerido con STORE_DRIVER=firestore")
		}
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	switch c.Prefs.Driver {
	case PrefsBolt, PrefsMemory:
	case PrefsRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("config: REDIS_URL o REDIS_ADDR requerido con PREFS_DRIVER=redis")
		}
	default:
		return fmt.Errorf("config: PREFS_DRIVER desconocido %q", c.Prefs.Driver)
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
			n, err := strconv.Atoi(v.GetString(key))
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
