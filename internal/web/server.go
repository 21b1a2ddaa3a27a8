package web

import (
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/karlseguin/ccache/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/tutorlog/tutorlog/internal/config"
	"github.com/tutorlog/tutorlog/internal/database"
)

type server struct {
	config *config.Config
	logger *zap.Logger

	db       *database.DataBase
	calendar *ccache.Cache

	started  time.Time
	requests atomic.Int64
}

func newServer(config *config.Config, logger *zap.Logger, db *database.DataBase) *server {
	return &server{
		config:   config,
		logger:   logger,
		db:       db,
		calendar: ccache.New(ccache.Configure()),
		started:  time.Now(),
	}
}

func (s *server) buildEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(func(c *gin.Context) {
		s.requests.Inc()
		c.Next()
	})

	setupUserService(s, r)
	setupPupilService(s, r)
	setupGroupService(s, r)
	setupEventService(s, r)
	setupPaymentService(s, r)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})
	r.GET("/health", s.health)

	return r
}

func (s *server) run() error {
	r := s.buildEngine()
	s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
	return r.Run(s.config.Server.ListenAddress)
}

func (s *server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"uptime":   time.Since(s.started).String(),
		"requests": s.requests.Load(),
	})
}
