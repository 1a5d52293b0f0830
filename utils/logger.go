package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05.000000",
	})
	return l
}

func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

func IsVerbose() bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}

// SetOutput redirects all log output, mainly for tests.
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

func Verbose(format string, args ...interface{}) {
	logger.Debugf("[VERBOSE] "+format, args...)
}

func Info(format string, args ...interface{}) {
	logger.Infof("[INFO] "+format, args...)
}

func Warn(format string, args ...interface{}) {
	logger.Warnf("[WARN] "+format, args...)
}
