package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IndexFile    string        `mapstructure:"index_file"`
	PublicDir    string        `mapstructure:"public_dir"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// Address is the listen address derived from Port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

// DatabaseConfig selects the persistence backend. Driver is "mongo" or "memory".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`   // empty disables file output
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// LoadConfig reads configuration from an optional .env file, an optional
// config.yaml under path, and the environment, in increasing precedence.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is the normal case outside local development.
	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.port -> SERVER_PORT, database.uri -> DATABASE_URI
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	// The conventional names win over the derived ones.
	if err = v.BindEnv("database.uri", "MONGO_URI", "DATABASE_URI"); err != nil {
		return config, err
	}
	if err = v.BindEnv("server.port", "PORT", "SERVER_PORT"); err != nil {
		return config, err
	}

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.index_file", "views/index.html")
	v.SetDefault("server.public_dir", "public")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "exercise_tracker")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return config, fmt.Errorf("reading config file: %w", err)
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decoding config: %w", err)
	}

	if err = config.validate(); err != nil {
		return config, err
	}

	return config, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" {
			return errors.New("database.uri (MONGO_URI) is required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	return nil
}
