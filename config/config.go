package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultConfig     = "config.json"
	DefaultDatabase   = "auth"
	DefaultCollection = "users"

	envPrefix = "STUDENT_SYNC"
)

type Config struct {
	DBURI         string `validate:"required,uri"`
	SpreadsheetID string `validate:"required"`
	Database      string `validate:"required"`
	Collection    string `validate:"required"`
	Credentials   string
	Workdir       string
	Log           LogConfig
}

type LogConfig struct {
	Level  string `validate:"omitempty,oneof=debug info warn error"`
	Format string `validate:"omitempty,oneof=console json"`
}

// Load reads the JSON configuration file (if it exists) and then applies any STUDENT_SYNC_*
// environment overrides, including those from a .env file in the working directory.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if file != "" {
		if _, err := os.Stat(file); err == nil {
			v.SetConfigFile(file)
			v.SetConfigType("json")

			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "error reading configuration file %s", file)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "error reading configuration file %s", file)
		}
	}

	cfg := Config{
		DBURI:         v.GetString("DB_URI"),
		SpreadsheetID: v.GetString("SPREADSHEET_ID"),
		Database:      v.GetString("DATABASE"),
		Collection:    v.GetString("COLLECTION"),
		Credentials:   v.GetString("CREDENTIALS"),
		Workdir:       v.GetString("WORKDIR"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	return &cfg, nil
}

// Validate checks that everything needed to run a sync has been configured.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return errors.Errorf("invalid configuration: %s (%s)", invalid[0].Field(), invalid[0].Tag())
		}

		return errors.Wrap(err, "invalid configuration")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE", DefaultDatabase)
	v.SetDefault("COLLECTION", DefaultCollection)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}
