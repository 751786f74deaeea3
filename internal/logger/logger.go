package logger

import (
	"os"
	"time"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	logrus "github.com/sirupsen/logrus"
)

// Setup initializes Logrus application logging via a rotating file.
func Setup() {
	// 1) Lumberjack for file rotation
	rotator := &lumberjack.Logger{
		Filename:   "./logs/app.log",
		MaxSize:    10, // megabytes
		MaxBackups: 7,  // keep up to 7 old files
		MaxAge:     7,  // days
		Compress:   true,
	}

	// 2) Configure Logrus to write to that file
	logrus.SetOutput(rotator)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(logrus.DebugLevel)
}

// RequestLogger returns the per-request access log middleware (zerolog to
// stderr, one line per request).
func RequestLogger() gin.HandlerFunc {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return ginlogger.SetLogger(ginlogger.WithLogger(
		func(_ *gin.Context, _ zerolog.Logger) zerolog.Logger {
			return zl
		},
	))
}
