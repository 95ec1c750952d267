package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger создаёт JSON-логгер с заданным уровнем.
// Неизвестный уровень заменяется на info.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// LogError пишет ошибку с указанием модуля и операции.
func LogError(logger logrus.FieldLogger, module, operation string, err error, fields logrus.Fields) {
	entry := logger.WithFields(logrus.Fields{
		"module":    module,
		"operation": operation,
	})
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(err.Error())
}
