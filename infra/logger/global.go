package logger

import "sync"

var (
	globalLogger *Logger
	once         sync.Once
)

// InitGlobal initializes the global logger. Later calls are no-ops.
func InitGlobal(cfg Config) {
	once.Do(func() {
		globalLogger = New(cfg)
	})
}

// Global returns the global logger, falling back to a console-only logger if
// InitGlobal was never called. The fallback shares InitGlobal's once, so
// concurrent first callers observe a single logger.
func Global() *Logger {
	once.Do(func() {
		globalLogger = New(Config{MinLevel: LevelInfo})
	})
	return globalLogger
}

// Convenience functions for global logging.

func Debug(message string, ctx ...Context) { Global().Debug(message, ctx...) }
func Info(message string, ctx ...Context)  { Global().Info(message, ctx...) }
func Warn(message string, ctx ...Context)  { Global().Warn(message, ctx...) }

func Error(message string, err error, ctx ...Context) { Global().Error(message, err, ctx...) }
func Fatal(message string, err error, ctx ...Context) { Global().Fatal(message, err, ctx...) }
