// Package logutil configures the logrus output of the shardvote tools: the console
// format and an optional persistent log file receiving every entry.
package logutil

import (
	"os"
	"strings"

	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var _ = logrus.Hook(&WriterHook{})

// WriterHook is a hook that writes logs of specified LogLevels to a file logger.
type WriterHook struct {
	LogLevels []logrus.Level
	Logger    *logrus.Logger
}

// Fire will be called when some logging function is called with current hook.
// It will format log entry to string and write it to the file logger.
func (hook *WriterHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	hook.Logger.Println(strings.TrimSuffix(line, "\n"))
	return nil
}

// Levels defines on which log levels this hook would trigger.
func (hook *WriterHook) Levels() []logrus.Level {
	return hook.LogLevels
}

// Formatter returns the logrus formatter for a format name: text, json or fluentd.
func Formatter(format string, colors bool) (logrus.Formatter, error) {
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		formatter.DisableColors = !colors
		return formatter, nil
	case "fluentd":
		return &joonix.FluentdFormatter{}, nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, errors.Errorf("unknown log format %v", format)
	}
}

// ConfigureLogging sets the format and level of the standard logrus logger.
func ConfigureLogging(format, verbosity string) error {
	formatter, err := Formatter(format, true)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return errors.Wrap(err, "could not parse verbosity")
	}
	logrus.SetFormatter(formatter)
	logrus.SetLevel(level)
	return nil
}

// ConfigurePersistentLogging adds a log-to-file writer hook to the logrus logger. The writer hook appends new
// logs to the specified log file.
func ConfigurePersistentLogging(logFileName, logFileFormatName string) error {
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	formatter, err := Formatter(logFileFormatName, false)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
	if err != nil {
		return errors.Wrap(err, "could not open log file")
	}
	fileLogger := &logrus.Logger{
		Out:       f,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.TraceLevel,
	}
	logrus.AddHook(&WriterHook{
		LogLevels: logrus.AllLevels,
		Logger:    fileLogger,
	})
	logrus.Info("File logger initialized")
	return nil
}
