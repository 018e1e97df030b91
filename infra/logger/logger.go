package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Entry is a structured log record.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Component string         `json:"component,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Error     string         `json:"error,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Service   string         `json:"service"`
}

// Context holds contextual information attached to a log entry.
type Context struct {
	Component string
	RequestID string
	Fields    map[string]any
}

// Sink receives finished entries, typically for shipping to a search backend.
// Implementations must be safe for concurrent use.
type Sink interface {
	LogEntry(ctx context.Context, entry any) error
}

// Logger writes structured entries to the console and an optional sink.
type Logger struct {
	sink       Sink
	enableSink bool
	minLevel   Level
	service    string
}

// Config configures a Logger.
type Config struct {
	Sink     Sink
	MinLevel Level
	Service  string
}

// New creates a logger. A nil sink disables shipping and keeps console output
// only.
func New(cfg Config) *Logger {
	minLevel := cfg.MinLevel
	if minLevel == "" {
		minLevel = LevelInfo
	}
	service := cfg.Service
	if service == "" {
		service = "payfront"
	}
	return &Logger{
		sink:       cfg.Sink,
		enableSink: cfg.Sink != nil,
		minLevel:   minLevel,
		service:    service,
	}
}

func (l *Logger) Debug(message string, ctx ...Context) { l.log(LevelDebug, message, nil, ctx...) }
func (l *Logger) Info(message string, ctx ...Context)  { l.log(LevelInfo, message, nil, ctx...) }
func (l *Logger) Warn(message string, ctx ...Context)  { l.log(LevelWarn, message, nil, ctx...) }

// Error logs an error message with its underlying error.
func (l *Logger) Error(message string, err error, ctx ...Context) {
	l.log(LevelError, message, err, ctx...)
}

// Fatal logs an error message and exits.
func (l *Logger) Fatal(message string, err error, ctx ...Context) {
	l.log(LevelFatal, message, err, ctx...)
	os.Exit(1)
}

func (l *Logger) log(level Level, message string, err error, ctx ...Context) {
	if !l.shouldLog(level) {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		Service:   l.service,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if len(ctx) > 0 {
		entry.Component = ctx[0].Component
		entry.RequestID = ctx[0].RequestID
		entry.Fields = ctx[0].Fields
	}

	l.logToConsole(entry)

	if l.enableSink {
		go l.logToSink(entry)
	}
}

func (l *Logger) shouldLog(level Level) bool {
	order := map[Level]int{
		LevelDebug: 0,
		LevelInfo:  1,
		LevelWarn:  2,
		LevelError: 3,
		LevelFatal: 4,
	}
	return order[level] >= order[l.minLevel]
}

func (l *Logger) logToConsole(entry Entry) {
	var parts []string
	if entry.Component != "" {
		parts = append(parts, "component="+entry.Component)
	}
	if entry.RequestID != "" {
		parts = append(parts, "req_id="+entry.RequestID)
	}
	for key, value := range entry.Fields {
		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}
	if entry.Error != "" {
		parts = append(parts, "error="+entry.Error)
	}

	context := ""
	if len(parts) > 0 {
		context = " [" + strings.Join(parts, " ") + "]"
	}

	log.Printf("[%s] %s%s", strings.ToUpper(string(entry.Level)), entry.Message, context)
}

func (l *Logger) logToSink(entry Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.sink.LogEntry(ctx, entry); err != nil {
		log.Printf("Failed to ship log entry: %v", err)
	}
}
