// Package logging provides the shared logger for qldb-go. Packages obtain
// it once at init time:
//
//	var log = logging.GetLogger()
//
// The log level is controlled by the QLDB_LOG_LEVEL environment variable
// (trace, debug, info, warn, error). The default is warn so that the pool
// stays quiet inside applications that embed it.
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// GetLogger returns the process-wide logger, initializing it on first use.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.SetLevel(levelFromEnv())
	})
	return logger
}

// SetLevel overrides the log level for the shared logger.
func SetLevel(level logrus.Level) {
	GetLogger().SetLevel(level)
}

func levelFromEnv() logrus.Level {
	raw := os.Getenv("QLDB_LOG_LEVEL")
	if raw == "" {
		return logrus.WarnLevel
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
