package sim

import "github.com/sirupsen/logrus"

// LineWriter is a fire-and-forget, line-oriented logging sink.
type LineWriter interface {
	WriteLine(text string)
}

// LogrusLineWriter forwards lines to the standard logrus logger at Level.
type LogrusLineWriter struct {
	Level logrus.Level
}

// NewLogrusLineWriter returns a LineWriter logging at debug level.
func NewLogrusLineWriter() *LogrusLineWriter {
	return &LogrusLineWriter{Level: logrus.DebugLevel}
}

// WriteLine implements LineWriter.
func (w *LogrusLineWriter) WriteLine(text string) {
	logrus.StandardLogger().Log(w.Level, text)
}

// DiscardLineWriter drops every line.
type DiscardLineWriter struct{}

// WriteLine implements LineWriter.
func (DiscardLineWriter) WriteLine(string) {}
