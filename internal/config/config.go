package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Chama"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"Africa/Nairobi"`
		Currency string `envconfig:"APP_CURRENCY" default:"KES"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"chama"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"AUTH_JWT_SECRET" required:"true"`
		TokenTTL  time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
		// bcrypt hashes from `api -hash-secret`; a role with no hash cannot log in.
		AdminSecretHash     string `envconfig:"AUTH_ADMIN_SECRET_HASH"`
		TreasurerSecretHash string `envconfig:"AUTH_TREASURER_SECRET_HASH"`
		ViewerSecretHash    string `envconfig:"AUTH_VIEWER_SECRET_HASH"`
	}

	Sweep struct {
		Enabled  bool          `envconfig:"SWEEP_ENABLED" default:"true"`
		Interval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location resolves App.Timezone. Month boundaries for contributions, late
// fees and ledgers are taken in this zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
