package common

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Packages derive entries from it with
// WithField/WithFields rather than creating their own loggers.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// ConfigureLogging sets the level and output format of Log.
func ConfigureLogging(level string, json bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "logging: level %q", level)
	}
	Log.SetLevel(lvl)
	if json {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
