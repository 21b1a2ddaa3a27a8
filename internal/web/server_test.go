package web

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tutorlog/tutorlog/internal/config"
	"github.com/tutorlog/tutorlog/internal/database"
)

// newTestEngine builds the real route tree over a sqlmock-backed connection.
func newTestEngine(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal("Failed to create sqlmock:", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatal("Failed to open gorm over sqlmock:", err)
	}

	s := newServer(&config.Config{}, zap.NewNop(), &database.DataBase{DB: db})
	return s.buildEngine(), mock
}
