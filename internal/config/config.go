package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tutorlog/tutorlog/pkg/conf"
)

type Config struct {
	Server struct {
		ListenAddress string
	}

	DataBase struct {
		Host           string
		Port           uint16
		User           string
		Pass           string
		Name           string
		SkipMigrations bool
	}

	Cache struct {
		CalendarTTL time.Duration
	}

	Log struct {
		File string
	}
}

func ParseConfig() (*Config, error) {
	config := &Config{}
	if err := conf.ParseConfig(config, conf.EnvPrefix("TUTORLOG")); err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	if config.Server.ListenAddress == "" {
		config.Server.ListenAddress = ":8000"
	}
	if config.Cache.CalendarTTL == 0 {
		config.Cache.CalendarTTL = time.Minute
	}
	return config, nil
}
