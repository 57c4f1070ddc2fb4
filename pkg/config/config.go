package config

import (
	"fmt"
	"os"
	"time"

	"github.com/arnavshah/noc-rotation-go/pkg/calendar"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureJWTSecret = "change-me"

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	GinMode     string `mapstructure:"GIN_MODE"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration; DATABASE_URL selects postgres, otherwise sqlite at DATA_PATH
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DataPath    string `mapstructure:"DATA_PATH"`

	// Auth configuration
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	APIMasterSecret string `mapstructure:"API_MASTER_SECRET"`
	AdminUsername   string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword   string `mapstructure:"ADMIN_PASSWORD"`
	BcryptCost      int    `mapstructure:"BCRYPT_COST"`

	// Rotation configuration; an empty ROSTER_PATH uses the embedded roster
	RosterPath         string `mapstructure:"ROSTER_PATH"`
	RotationStart      string `mapstructure:"ROTATION_START"`
	HorizonDays        int    `mapstructure:"ROTATION_HORIZON_DAYS"`
	CalendarFirstMonth string `mapstructure:"CALENDAR_FIRST_MONTH"`
	CalendarMonths     int    `mapstructure:"CALENDAR_MONTHS"`
}

// LoadEnvFiles loads the first .env found in the working directory or its parents
func LoadEnvFiles() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads configuration from environment variables and an optional config.yaml
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATA_PATH", "rotation.db")

	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("API_MASTER_SECRET", "")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("BCRYPT_COST", 14)

	v.SetDefault("ROSTER_PATH", "")
	v.SetDefault("ROTATION_START", "2025-11-18")
	v.SetDefault("ROTATION_HORIZON_DAYS", 60)
	v.SetDefault("CALENDAR_FIRST_MONTH", "2025-11")
	v.SetDefault("CALENDAR_MONTHS", 3)
}

func validate(cfg *Config) error {
	if cfg.IsProduction() && cfg.JWTSecret == insecureJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if _, err := models.ParseDate(cfg.RotationStart); err != nil {
		return fmt.Errorf("ROTATION_START: %w", err)
	}
	if cfg.HorizonDays <= 0 {
		return fmt.Errorf("ROTATION_HORIZON_DAYS must be positive, got %d", cfg.HorizonDays)
	}
	if _, err := calendar.NewNavigator(cfg.CalendarFirstMonth, cfg.CalendarMonths); err != nil {
		return fmt.Errorf("calendar window: %w", err)
	}
	return nil
}

// Start returns the parsed rotation start date
func (c *Config) Start() time.Time {
	t, _ := models.ParseDate(c.RotationStart)
	return t
}

// Navigator returns the bounded calendar window
func (c *Config) Navigator() calendar.Navigator {
	n, _ := calendar.NewNavigator(c.CalendarFirstMonth, c.CalendarMonths)
	return n
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
