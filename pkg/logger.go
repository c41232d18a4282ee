package huffman

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

type Logger interface {
	Info(message string, module string)
	Error(string)
}

type nopLogger struct{}

func (nopLogger) Info(string, string) {}
func (nopLogger) Error(string)        {}

var logger Logger = nopLogger{}

func SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	logger = l
}

// StdLogger sends informational records and errors to different slog
// loggers, usually stdout and stderr.
type StdLogger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

// NewStdLogger writes info records as bracketed lines and errors as JSON.
func NewStdLogger(out io.Writer, errOut io.Writer) StdLogger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return StdLogger{
		InfoLog:  slog.New(NewLineHandler(out, opts)),
		ErrorLog: slog.New(slog.NewJSONHandler(errOut, opts)),
	}
}

func (l StdLogger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l StdLogger) Error(message string) {
	l.ErrorLog.Error(message)
}

// LineHandler is a slog.Handler printing one line per record:
//
//	[2006/01/02 15:04:05] [LEVEL] [value]... message
//
// Attribute keys and groups are dropped, only values are shown. The level
// is printed for records above INFO.
type LineHandler struct {
	level  slog.Leveler
	mu     *sync.Mutex
	out    io.Writer
	values []string
}

func NewLineHandler(out io.Writer, opts *slog.HandlerOptions) *LineHandler {
	h := &LineHandler{out: out, mu: &sync.Mutex{}}
	if opts != nil {
		h.level = opts.Level
	}
	return h
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.level != nil {
		minLevel = h.level.Level()
	}
	return level >= minLevel
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	values := make([]string, len(h.values), len(h.values)+len(attrs))
	copy(values, h.values)
	for _, a := range attrs {
		values = append(values, bracket(a.Value))
	}
	return &LineHandler{level: h.level, mu: h.mu, out: h.out, values: values}
}

func (h *LineHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}
	var sb strings.Builder
	sb.WriteString(t.Format("[2006/01/02 15:04:05]"))
	if r.Level > slog.LevelInfo {
		sb.WriteString(" " + r.Level.String())
	}
	for _, v := range h.values {
		sb.WriteString(" " + v)
	}
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" " + bracket(a.Value))
		return true
	})
	sb.WriteString(" " + r.Message + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func bracket(v slog.Value) string {
	return "[" + v.Resolve().String() + "]"
}
