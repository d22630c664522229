package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	OMDB       OMDBConfig
	Pagination PaginationConfig
	Session    SessionConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type OMDBConfig struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// PaginationConfig carries the server-side page size ceiling. Requests
// asking for more than MaxPerPage are clamped, never rejected.
type PaginationConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

type SessionConfig struct {
	ExpiryHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("OMDB_BASE_URL", "http://www.omdbapi.com")
	viper.SetDefault("OMDB_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PAGE_SIZE_DEFAULT", 10)
	viper.SetDefault("PAGE_SIZE_MAX", 100)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		OMDB: OMDBConfig{
			APIKey:         viper.GetString("OMDB_API_KEY"),
			BaseURL:        viper.GetString("OMDB_BASE_URL"),
			TimeoutSeconds: viper.GetInt("OMDB_TIMEOUT_SECONDS"),
		},
		Pagination: PaginationConfig{
			DefaultPerPage: viper.GetInt("PAGE_SIZE_DEFAULT"),
			MaxPerPage:     viper.GetInt("PAGE_SIZE_MAX"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
	}

	return config, nil
}
