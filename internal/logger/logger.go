// internal/logger/logger.go
package logger

import (
    "os"
    "strings"

    "github.com/sirupsen/logrus"

    "github.com/unclebandit/donorpulse-backend/internal/config"
)

// Log is the global logger instance
var Log = logrus.New()

// Init configures the global logger from application configuration.
func Init(cfg *config.Config) {
    Log.SetOutput(os.Stdout)

    level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
    if err != nil {
        Log.Warnf("Invalid log level '%s', defaulting to 'info'", cfg.LogLevel)
        level = logrus.InfoLevel
    }
    Log.SetLevel(level)

    if strings.ToLower(cfg.Environment) == "production" {
        Log.SetFormatter(&logrus.JSONFormatter{})
    } else {
        Log.SetFormatter(&logrus.TextFormatter{
            FullTimestamp:   true,
            TimestampFormat: "2006-01-02 15:04:05",
        })
    }
}
