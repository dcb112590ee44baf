package logger

import (
	"io"
	"os"
	"sort"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) charm() charmlog.Level {
	switch l {
	case Debug:
		return charmlog.DebugLevel
	case Warn:
		return charmlog.WarnLevel
	case Error:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "logfmt":
		return FormatLogfmt
	default:
		return FormatText
	}
}

func (f Format) formatter() charmlog.Formatter {
	switch f {
	case FormatJSON:
		return charmlog.JSONFormatter
	case FormatLogfmt:
		return charmlog.LogfmtFormatter
	default:
		return charmlog.TextFormatter
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// File, si no está vacío, agrega salida a un archivo rotado (lumberjack).
	File string

	// Output reemplaza stdout; útil en tests.
	Output io.Writer
}

// charmLogger adapta charmbracelet/log a la interfaz Logger (campos como map).
type charmLogger struct {
	l *charmlog.Logger
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if f := strings.TrimSpace(opts.File); f != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   f,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // días
			Compress:   true,
		})
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	l := charmlog.NewWithOptions(out, charmlog.Options{
		Level:           opts.Level.charm(),
		Formatter:       format.formatter(),
		ReportTimestamp: true,
	})
	if app := strings.TrimSpace(opts.App); app != "" {
		l = l.With("app", app)
	}

	return &charmLogger{l: l}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json|logfmt (default text)
// - LOG_FILE=/var/log/petcare.log (opcional, rotado)
// - APP_NAME=pet-care-insights (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
		File:   os.Getenv("LOG_FILE"),
	})
}

func (c *charmLogger) With(fields map[string]any) Logger {
	kv := keyvals(fields)
	if len(kv) == 0 {
		return c
	}
	return &charmLogger{l: c.l.With(kv...)}
}

func (c *charmLogger) Debug(msg string, fields map[string]any) { c.l.Debug(msg, keyvals(fields)...) }
func (c *charmLogger) Info(msg string, fields map[string]any)  { c.l.Info(msg, keyvals(fields)...) }
func (c *charmLogger) Warn(msg string, fields map[string]any)  { c.l.Warn(msg, keyvals(fields)...) }
func (c *charmLogger) Error(msg string, fields map[string]any) { c.l.Error(msg, keyvals(fields)...) }

// keyvals ordena las keys para salida estable (útil en tests/logs).
func keyvals(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}

type nop struct{}

// Nop descarta todo. Para tests y para la CLI sin --verbose.
func Nop() Logger { return nop{} }

func (n nop) With(map[string]any) Logger     { return n }
func (nop) Debug(string, map[string]any) {}
func (nop) Info(string, map[string]any)  {}
func (nop) Warn(string, map[string]any)  {}
func (nop) Error(string, map[string]any) {}
