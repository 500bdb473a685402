package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Puerto por defecto de CockroachDB cuando un contact point no lo trae.
const defaultDBPort = "26257"

var validate = validator.New()

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port           string   `toml:"port" validate:"required,numeric"`
	DatabaseURL    string   `toml:"database_url"`
	ContactPoints  []string `toml:"contact_points" validate:"required,min=1,dive,required"`
	Keyspace       string   `toml:"keyspace" validate:"required"`
	Database       string   `toml:"database" validate:"required"`
	User           string   `toml:"user" validate:"required"`
	Password       string   `toml:"password"`
	SSLMode        string   `toml:"sslmode" validate:"required"`
	LogLevel       string   `toml:"log_level" validate:"oneof=debug info warn error"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Defaults apunta a un nodo local y al keyspace "testkeyspace".
func Defaults() Config {
	return Config{
		Port:           "3000",
		ContactPoints:  []string{"127.0.0.1"},
		Keyspace:       "testkeyspace",
		Database:       "defaultdb",
		User:           "root",
		SSLMode:        "disable",
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
	}
}

// Load parte de los defaults, aplica el archivo TOML de CONFIG_FILE (si existe)
// y por último las variables de entorno.
func Load() (Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	// Normalizamos por si alguien manda ":8080"
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	cfg.ContactPoints = normalizeContactPoints(cfg.ContactPoints)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.BuildDatabaseURL()
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(content, cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("failed to parse config file at %d:%d: %w", row, col, err)
		}
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, target *string) {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			*target = value
		}
	}
	setList := func(key string, target *[]string) {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			*target = splitList(value)
		}
	}

	setString("PORT", &cfg.Port)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setList("DB_CONTACT_POINTS", &cfg.ContactPoints)
	setString("DB_KEYSPACE", &cfg.Keyspace)
	setString("DB_NAME", &cfg.Database)
	setString("DB_USER", &cfg.User)
	setString("DB_PASSWORD", &cfg.Password)
	setString("DB_SSLMODE", &cfg.SSLMode)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setList("CORS_ALLOWED_ORIGINS", &cfg.AllowedOrigins)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeContactPoints agrega el puerto por defecto a los hosts que no lo traen.
func normalizeContactPoints(points []string) []string {
	out := make([]string, 0, len(points))
	for _, point := range points {
		point = strings.TrimSpace(point)
		if point == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(point); err != nil {
			point = net.JoinHostPort(strings.Trim(point, "[]"), defaultDBPort)
		}
		out = append(out, point)
	}
	return out
}

// BuildDatabaseURL arma un DSN multi-host para pgx.
// El keyspace viaja como search_path, así las sentencias no lo repiten.
func (cfg Config) BuildDatabaseURL() string {
	query := url.Values{}
	query.Set("sslmode", cfg.SSLMode)
	query.Set("search_path", cfg.Keyspace)

	dsn := url.URL{
		Scheme:   "postgres",
		Host:     strings.Join(cfg.ContactPoints, ","),
		Path:     "/" + cfg.Database,
		RawQuery: query.Encode(),
	}
	if cfg.Password != "" {
		dsn.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		dsn.User = url.User(cfg.User)
	}

	return dsn.String()
}
