// Package envlog provides the logrus wiring recovered-parse events are
// routed through: one structured entry per RecoveredIssue, fields
// carrying the reason, key, and byte offset instead of a formatted
// message string.
package envlog

import (
	"github.com/envcore/dotparse/internal/envparse"
	"github.com/sirupsen/logrus"
)

// Levels returns a map of log level string names to their constant
// equivalent, for config surfaces that accept a level by name.
func Levels() map[string]logrus.Level {
	return map[string]logrus.Level{
		"panic":   logrus.PanicLevel,
		"fatal":   logrus.FatalLevel,
		"error":   logrus.ErrorLevel,
		"warning": logrus.WarnLevel,
		"warn":    logrus.WarnLevel,
		"info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"trace":   logrus.TraceLevel,
	}
}

// Hook returns an envparse.Options.OnRecovered callback that logs each
// RecoveredIssue as a structured warning entry on logger. Pass logrus's
// StandardLogger() for package-default behavior.
func Hook(logger *logrus.Logger) func(envparse.RecoveredIssue) {
	return func(issue envparse.RecoveredIssue) {
		logger.WithFields(logrus.Fields{
			"reason": issue.Reason.String(),
			"key":    issue.Key,
			"offset": issue.Offset,
		}).Warn("dotparse: recovered from malformed input")
	}
}
