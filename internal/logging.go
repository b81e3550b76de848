package internal

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// LogLevels maps accepted level names to logrus levels.
var LogLevels = map[string]logrus.Level{
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"fatal": logrus.FatalLevel,
	"panic": logrus.PanicLevel,
}

// Log formats accepted by InitLogging.
const (
	FormatText = "text"
	FormatEasy = "easy"
)

const timestampFormat = "2006-01-02 15:04:05.000000"

// InitLogging sends logs to stdout with microsecond timestamps.
//
// The text format keeps structured fields (tier, mode, client) as key=value
// pairs; the easy format is a compact single line without them.
func InitLogging(level, format string) error {
	lvl, ok := LogLevels[level]
	if !ok {
		return fmt.Errorf("invalid log level: %s", level)
	}
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(lvl)
	switch format {
	case "", FormatText:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	case FormatEasy:
		logrus.SetFormatter(&easy.Formatter{
			TimestampFormat: timestampFormat,
			LogFormat:       "[%time%] [%lvl%] %msg%\n",
		})
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}
	return nil
}
