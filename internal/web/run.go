package web

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tutorlog/tutorlog/internal/config"
	"github.com/tutorlog/tutorlog/internal/database"
)

func makeDSN(conf *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		conf.DataBase.Host,
		conf.DataBase.Port,
		conf.DataBase.User,
		conf.DataBase.Pass,
		conf.DataBase.Name,
	)
}

func Run(logger *zap.Logger) error {
	conf, err := config.ParseConfig()
	if err != nil {
		return err
	}

	db, err := database.OpenDataBase(logger, makeDSN(conf))
	if err != nil {
		return errors.Wrap(err, "Failed to open database")
	}

	if conf.DataBase.SkipMigrations {
		logger.Info("Skipping database migrations")
	} else if err = db.Migrate(); err != nil {
		return errors.Wrap(err, "Failed to migrate database")
	}

	s := newServer(conf, logger, db)
	return errors.Wrap(s.run(), "Server failed")
}
