package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Company      CompanyConfig      `mapstructure:"company"`
	Travel       TravelConfig       `mapstructure:"travel"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Notification NotificationConfig `mapstructure:"notification"`
	Directory    DirectoryConfig    `mapstructure:"directory"`
	Logger       LoggerConfig       `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// CompanyConfig identifies the deploying company
type CompanyConfig struct {
	Name        string `mapstructure:"name"`
	HomeCountry string `mapstructure:"home_country"`
	Currency    string `mapstructure:"currency"`
}

// TravelConfig holds the travel policy values
type TravelConfig struct {
	DomesticDailyRate      float64 `mapstructure:"domestic_daily_rate"`
	InternationalDailyRate float64 `mapstructure:"international_daily_rate"`
	ReferencePrefix        string  `mapstructure:"reference_prefix"`
}

// StorageConfig holds attachment storage configuration
type StorageConfig struct {
	AttachmentDir string `mapstructure:"attachment_dir"`
}

// NotificationConfig holds notification configuration
type NotificationConfig struct {
	Locale           string `mapstructure:"locale"`
	FinanceRecipient string `mapstructure:"finance_recipient"`
}

// DirectoryConfig maps employees to their managers for deployments without
// an external HR system
type DirectoryConfig struct {
	Managers map[string]string `mapstructure:"managers"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Database defaults
	viper.SetDefault("database.path", "data/tripdesk.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	// Travel policy defaults
	viper.SetDefault("travel.domestic_daily_rate", 700.0)
	viper.SetDefault("travel.international_daily_rate", 1500.0)
	viper.SetDefault("travel.reference_prefix", "TR")

	// Storage defaults
	viper.SetDefault("storage.attachment_dir", "attachments")

	// Notification defaults
	viper.SetDefault("notification.locale", "fr")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("company.name", "COMPANY_NAME")
	viper.BindEnv("company.home_country", "COMPANY_HOME_COUNTRY")
	viper.BindEnv("company.currency", "COMPANY_CURRENCY")
	viper.BindEnv("notification.finance_recipient", "FINANCE_RECIPIENT")
	viper.BindEnv("database.path", "DATABASE_PATH")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Company.Name == "" {
		return fmt.Errorf("company.name is required")
	}
	if c.Company.HomeCountry == "" {
		return fmt.Errorf("company.home_country is required")
	}
	if c.Company.Currency == "" {
		return fmt.Errorf("company.currency is required")
	}

	if c.Travel.DomesticDailyRate <= 0 {
		return fmt.Errorf("travel.domestic_daily_rate must be positive")
	}
	if c.Travel.InternationalDailyRate <= 0 {
		return fmt.Errorf("travel.international_daily_rate must be positive")
	}

	if c.Notification.FinanceRecipient == "" {
		return fmt.Errorf("notification.finance_recipient is required")
	}

	return nil
}
