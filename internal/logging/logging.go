// Package logging provides the operator-facing structured logger used
// throughout dotlanth's process lifecycle. It is distinct from the raw
// stdout sink the syscall host writes to for the dotDSL `log.emit`
// syscall (see internal/host) — these are two independent output
// streams and must not be conflated.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// Options configures the charmbracelet/log adapter.
type Options struct {
	Writer       io.Writer
	Level        string
	TimeFormat   string
	ReportCaller bool
	Formatter    cblog.Formatter
	Component    string
	Fields       map[string]interface{}
}

// Logger is a structured, leveled logger with persistent fields.
type Logger struct {
	base      *cblog.Logger
	fields    []interface{}
	component string
}

// New creates a configured Logger.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		TimeFormat:      opts.TimeFormat,
		ReportTimestamp: true,
		ReportCaller:    opts.ReportCaller,
		Formatter:       opts.Formatter,
		Fields:          mapToFields(opts.Fields),
	})

	var fields []interface{}
	if opts.Component != "" {
		fields = append(fields, "component", opts.Component)
	}

	return &Logger{base: base, fields: fields, component: opts.Component}, nil
}

// With derives a logger that always includes the supplied fields.
func (l *Logger) With(fields ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	next := make([]interface{}, len(l.fields))
	copy(next, l.fields)
	next = append(next, fields...)
	return &Logger{base: l.base, fields: next, component: l.component}
}

// Debug emits a debug log entry.
func (l *Logger) Debug(msg string, fields ...interface{}) { l.log(cblog.DebugLevel, msg, fields...) }

// Info emits an info log entry.
func (l *Logger) Info(msg string, fields ...interface{}) { l.log(cblog.InfoLevel, msg, fields...) }

// Warn emits a warning log entry.
func (l *Logger) Warn(msg string, fields ...interface{}) { l.log(cblog.WarnLevel, msg, fields...) }

// Error emits an error log entry, including the error as a field when present.
func (l *Logger) Error(err error, msg string, fields ...interface{}) {
	if err != nil {
		fields = append(fields, "error", err)
	}
	l.log(cblog.ErrorLevel, msg, fields...)
}

func (l *Logger) log(level cblog.Level, msg string, fields ...interface{}) {
	if l == nil || l.base == nil {
		return
	}
	payload := mergeFields(l.fields, fields)
	switch level {
	case cblog.DebugLevel:
		l.base.Debug(msg, payload...)
	case cblog.WarnLevel:
		l.base.Warn(msg, payload...)
	case cblog.ErrorLevel:
		l.base.Error(msg, payload...)
	default:
		l.base.Info(msg, payload...)
	}
}

func mapToFields(input map[string]interface{}) []interface{} {
	if len(input) == 0 {
		return nil
	}
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := make([]interface{}, 0, len(input)*2)
	for _, k := range keys {
		res = append(res, k, input[k])
	}
	return res
}

func mergeFields(base, additions []interface{}) []interface{} {
	store := make(map[string]interface{})
	order := make([]string, 0, len(base)/2+len(additions)/2)

	addPair := func(key string, value interface{}) {
		if key == "" {
			return
		}
		if _, exists := store[key]; !exists {
			order = append(order, key)
		}
		store[key] = value
	}

	process := func(values []interface{}) {
		for i := 0; i+1 < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				continue
			}
			addPair(key, values[i+1])
		}
	}

	process(base)
	process(additions)

	result := make([]interface{}, 0, len(order)*2)
	for _, key := range order {
		result = append(result, key, store[key])
	}
	return result
}
