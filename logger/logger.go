package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures logrus for JSON output. When LOG_FILE is set the log
// goes there, otherwise to stdout.
func InitLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetOutput(os.Stdout)

	logFilePath := os.Getenv("LOG_FILE")
	if logFilePath == "" {
		return
	}
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Warnf("Failed to open log file (%s), using stdout: %v", logFilePath, err)
		return
	}
	logrus.SetOutput(logFile)

	logrus.Info("Logger initialized")
}
