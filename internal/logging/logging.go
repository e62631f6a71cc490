// Package logging configures logrus for the web shells.
package logging

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Setup applies the level and formatter to the standard logrus logger.
// Unknown levels fall back to info.
func Setup(level string) *log.Logger {
	logger := log.StandardLogger()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// RequestLogger is chi's request logger writing through logger.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger,
		NoColor: true,
	})
}
