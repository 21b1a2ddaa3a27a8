package database

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/tutorlog/tutorlog/internal/models"
)

type DataBase struct {
	*gorm.DB
}

type DuplicateKey struct {
	nested error
}

func (e *DuplicateKey) Error() string {
	return e.nested.Error()
}

func (e *DuplicateKey) Unwrap() error {
	return e.nested
}

func IsDuplicateKey(err error) bool {
	duplicateKey := &DuplicateKey{}
	return errors.As(err, &duplicateKey)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// gorm does not classify constraint violations:
// https://github.com/go-gorm/gorm/issues/4037
func isUniqueViolation(err error) bool {
	perr := &pgconn.PgError{}
	if errors.As(err, &perr) {
		return perr.Code == "23505"
	}
	return false
}

func OpenDataBase(logger *zap.Logger, dsn string) (*DataBase, error) {
	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()

	var db *gorm.DB
	open := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: zapLogger,
		})
		if err != nil {
			logger.Warn("Failed to connect to postgres, retrying", zap.Error(err))
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = time.Minute
	if err := backoff.Retry(open, policy); err != nil {
		return nil, err
	}

	return &DataBase{db}, nil
}

func (db *DataBase) Migrate() error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Pupil{},
		&models.Group{},
		&models.GroupMember{},
		&models.Event{},
		&models.EventRepeatDay{},
		&models.EventPupil{},
		&models.Payment{},
	)
}
