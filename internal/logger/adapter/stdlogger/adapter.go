// Package stdlogger bridges printf style loggers (gorm, libraries) onto zerolog.
package stdlogger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to the global zerolog logger.
type Logger struct {
	component string
	level     zerolog.Level // level used by Printf
}

// New returns a Logger tagged with component "std" that prints at debug level.
func New() *Logger {
	return NewComponent("std", zerolog.DebugLevel)
}

// NewComponent returns a Logger tagged with component that prints at level.
func NewComponent(component string, level zerolog.Level) *Logger {
	return &Logger{component: component, level: level}
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...any) {
	l.write(l.level, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.write(zerolog.DebugLevel, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.write(zerolog.InfoLevel, format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...any) {
	l.write(zerolog.WarnLevel, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(zerolog.ErrorLevel, format, args...)
}

func (l *Logger) write(level zerolog.Level, format string, args ...any) {
	// gorm prefixes multi line messages with a newline
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	log.WithLevel(level).Str("component", l.component).Msg(msg)
}
