package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler implements slog.Handler for TTY-optimized text output.
// It provides colorized output when the writer supports it.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string

	useColor   bool
	timeColor  *color.Color
	traceColor *color.Color
	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	keyColor   *color.Color
}

// NewHandler creates a new TTY-optimized text handler.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts:       *opts,
		out:        out,
		mu:         &sync.Mutex{},
		useColor:   SupportsColor(out),
		timeColor:  color.New(color.FgHiBlack),
		traceColor: color.New(color.FgHiBlack),
		debugColor: color.New(color.FgMagenta),
		infoColor:  color.New(color.FgGreen),
		warnColor:  color.New(color.FgYellow),
		errorColor: color.New(color.FgRed, color.Bold),
		keyColor:   color.New(color.FgCyan),
	}
	// fatih/color keys its global switch off stdout; decide per writer instead.
	for _, c := range []*color.Color{h.timeColor, h.traceColor, h.debugColor, h.infoColor, h.warnColor, h.errorColor, h.keyColor} {
		if h.useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes one line: time, level, message, then key=value attributes.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.timeColor.Sprint(r.Time.Format(time.Kitchen)))
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "%-5s ", h.levelString(r.Level))
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) levelString(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return h.errorColor.Sprint(l.String())
	case l >= slog.LevelWarn:
		return h.warnColor.Sprint(l.String())
	case l >= slog.LevelInfo:
		return h.infoColor.Sprint(l.String())
	case l > LevelTrace:
		return h.debugColor.Sprint(l.String())
	default:
		return h.traceColor.Sprint("TRACE")
	}
}

func (h *Handler) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, p, ga)
		}
		return
	}

	a = Redact(a)
	fmt.Fprintf(b, " %s=%v", h.keyColor.Sprint(prefix+a.Key), a.Value.Any())
}

// WithAttrs returns a new Handler with the given attributes. Attributes are
// qualified with the current group prefix at the time they are added.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newH.attrs, h.attrs)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler whose record attributes are prefixed "name.".
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}
