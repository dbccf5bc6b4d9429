package core

import "fmt"

// Logger is the logging surface used by bring-up code.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

// DebugWriter is a function type for writing debug lines
type DebugWriter func(string)

var boardLogger Logger = nopLogger{}

// SetLogger installs the logger used by core. nil restores the no-op logger.
func SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	boardLogger = l
}

// SetDebugWriter routes log lines to a platform writer (debug UART etc.)
func SetDebugWriter(w DebugWriter) {
	SetLogger(writerLogger{w: w})
}

func logger() Logger {
	return boardLogger
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// writerLogger prefixes each line with its level letter.
type writerLogger struct {
	w DebugWriter
}

func (l writerLogger) Debugf(template string, args ...interface{}) {
	l.w("D " + fmt.Sprintf(template, args...))
}

func (l writerLogger) Infof(template string, args ...interface{}) {
	l.w("I " + fmt.Sprintf(template, args...))
}

func (l writerLogger) Warnf(template string, args ...interface{}) {
	l.w("W " + fmt.Sprintf(template, args...))
}

func (l writerLogger) Errorf(template string, args ...interface{}) {
	l.w("E " + fmt.Sprintf(template, args...))
}
