// Package logger configures structured diagnostic logging. Diagnostics go
// to stderr so they never mix with command output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

var (
	dim   = color.New(color.Faint)
	bold  = color.New(color.Bold)
	attrC = color.New(color.FgCyan)
)

// Config holds logger configuration.
type Config struct {
	Writer io.Writer
	Format string
	Level  slog.Level
}

// New creates a logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.Writer, opts)
	} else {
		handler = NewPrettyHandler(cfg.Writer, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string to slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

// PrettyHandler formats records as one coloured line each:
// TIME LEVEL message key=value ...
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	writer io.Writer
	attrs  []slog.Attr
	group  string
}

// NewPrettyHandler creates a new pretty handler.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: opts, mu: &sync.Mutex{}, writer: w}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes the log record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(dim.Sprint(r.Time.Format("15:04:05")))
	b.WriteByte(' ')
	b.WriteString(formatLevel(r.Level))
	b.WriteByte(' ')
	b.WriteString(bold.Sprint(r.Message))

	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(attrC.Sprintf("%s=%s", a.Key, formatValue(a.Value)))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, h.qualify(a))
	}
	return &nh
}

// WithGroup returns a new handler whose attribute keys are prefixed with
// name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if h.group != "" {
		nh.group = h.group + "." + name
	} else {
		nh.group = name
	}
	return &nh
}

func (h *PrettyHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

func formatLevel(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return color.MagentaString("DBG")
	case level < slog.LevelWarn:
		return color.GreenString("INF")
	case level < slog.LevelError:
		return color.YellowString("WRN")
	default:
		return color.RedString("ERR")
	}
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"") {
			return fmt.Sprintf("%q", s)
		}
		return s
	default:
		return v.String()
	}
}
