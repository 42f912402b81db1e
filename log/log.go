// Package log is the logrus facade used across djecho. Emissions are discarded unless logs.write is set.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var enabled bool

// Setup opens today's log file under where.Logs and configures format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	configure(f)
	return nil
}

// SetOutput enables logging to w regardless of configuration.
func SetOutput(w io.Writer) {
	enabled = true
	configure(w)
}

func configure(w io.Writer) {
	logrus.SetOutput(w)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// WithFields returns an entry carrying structured fields; it is a no-op sink while logging is disabled.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if !enabled {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return logrus.NewEntry(l)
	}
	return logrus.WithFields(fields)
}

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debug(args ...any) {
	if enabled {
		logrus.Debug(args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
