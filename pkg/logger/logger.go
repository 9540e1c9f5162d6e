package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
)

// Logger prints leveled, colored console lines tagged with a component name.
type Logger struct {
	component string
}

var (
	infoTag    = "INFO "
	successTag = "OK   "
	warnTag    = "WARN "
	errorTag   = "ERROR"
	debugTag   = "DEBUG"
)

func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) format(level, msg string) string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s | %s | %s:%d | %s | %s",
		time.Now().Format("2006-01-02 15:04:05"),
		level,
		filepath.Base(file),
		line,
		l.component,
		msg,
	)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	color.Cyan(l.format(infoTag, fmt.Sprintf(msg, args...)))
}

func (l *Logger) Success(msg string, args ...interface{}) {
	color.Green(l.format(successTag, fmt.Sprintf(msg, args...)))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	color.Yellow(l.format(warnTag, fmt.Sprintf(msg, args...)))
}

// Error logs msg followed by err and returns msg wrapping err.
func (l *Logger) Error(msg string, err error) error {
	color.Red(l.format(errorTag, fmt.Sprintf("%s: %v", msg, err)))
	return fmt.Errorf("%s: %w", msg, err)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	color.Magenta(l.format(debugTag, fmt.Sprintf(msg, args...)))
}
