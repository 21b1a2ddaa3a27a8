package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/tutorlog/tutorlog/internal/web"
	zlog "github.com/tutorlog/tutorlog/pkg/log"
)

func run() error {
	var logger = zlog.InitDev()
	if file := os.Getenv("TUTORLOG_LOG_FILE"); file != "" {
		logger = zlog.InitFile(file)
	}
	defer zlog.Sync()

	return web.Run(logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
