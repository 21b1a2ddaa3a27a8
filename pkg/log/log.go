package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

func InitProd() *zap.Logger {
	return initLogger(zap.NewProductionConfig())
}

func InitDev() *zap.Logger {
	return initLogger(zap.NewDevelopmentConfig())
}

// InitFile logs json to a size-rotated file.
func InitFile(path string) *zap.Logger {
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    128, // megabytes
		MaxBackups: 4,
	})
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		writer,
		zap.InfoLevel,
	)
	logger = zap.New(core, zap.AddStacktrace(zap.WarnLevel))
	zap.ReplaceGlobals(logger)
	return logger
}

func initLogger(config zap.Config) *zap.Logger {
	var err error
	logger, err = config.Build(zap.AddStacktrace(zap.WarnLevel))
	if err != nil {
		fmt.Printf("Failed to init zap logger: %v", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func Sync() {
	logger.Sync()
}
