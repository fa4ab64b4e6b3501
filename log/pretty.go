package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// prettyHandler writes one aligned, styled line per record. Styles are
// resolved against the output, so nothing but plain text is written to
// writers that are not terminals.
type prettyHandler struct {
	level      slog.Leveler
	addSource  bool
	formatTime FormatTime
	style      *palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []byte
	group      string
}

type palette struct {
	time, key, source lipgloss.Style
	trace, debug      lipgloss.Style
	info, warn, error lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)

	return &palette{
		time:   r.NewStyle().Faint(true),
		key:    r.NewStyle().Foreground(lipgloss.Color("8")),
		source: r.NewStyle().Faint(true).Italic(true),
		trace:  r.NewStyle().Foreground(lipgloss.Color("5")),
		debug:  r.NewStyle().Foreground(lipgloss.Color("4")),
		info:   r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		error:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (p *palette) forLevel(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.error
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

func newPrettyHandler(
	w io.Writer,
	formatTime FormatTime,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		level:      opts.Level,
		addSource:  opts.AddSource,
		formatTime: formatTime,
		style:      newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			buf = append(buf, h.style.time.Render(ts)...)
			buf = append(buf, ' ')
		}
	}

	label := fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String()))
	buf = append(buf, h.style.forLevel(r.Level).Render(label)...)

	if h.addSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		loc := filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)

		buf = append(buf, ' ')
		buf = append(buf, h.style.source.Render(loc)...)
	}

	buf = append(buf, ' ')
	buf = append(buf, r.Message...)
	buf = append(buf, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, h.group, a)

		return true
	})

	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf)

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = bytes.Clone(h.attrs)

	for _, a := range attrs {
		c.attrs = h.appendAttr(c.attrs, h.group, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group = joinKey(h.group, name)

	return &c
}

// appendAttr writes a as " key=value", flattening groups into dotted keys.
func (h *prettyHandler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix = joinKey(prefix, a.Key)
		}

		for _, ga := range a.Value.Group() {
			buf = h.appendAttr(buf, prefix, ga)
		}

		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, h.style.key.Render(joinKey(prefix, a.Key)+"=")...)

	return append(buf, formatValue(a.Value)...)
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " =\"\t\n") {
			return strconv.Quote(s)
		}

		return s

	case slog.KindTime:
		return v.Time().Format(time.RFC3339)

	default:
		return v.String()
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

// indentHandler renders each record with the standard JSON handler and
// re-indents it across several lines.
type indentHandler struct {
	json slog.Handler
	buf  *bytes.Buffer
	mu   *sync.Mutex
	w    io.Writer
}

func newIndentHandler(w io.Writer, opts *slog.HandlerOptions) *indentHandler {
	buf := new(bytes.Buffer)

	return &indentHandler{
		json: slog.NewJSONHandler(buf, opts),
		buf:  buf,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *indentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.json.Enabled(ctx, level)
}

func (h *indentHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()

	if err := h.json.Handle(ctx, r); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(h.buf.Bytes()), "", "  "); err != nil {
		return err
	}

	out.WriteByte('\n')

	_, err := h.w.Write(out.Bytes())

	return err
}

func (h *indentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.json = h.json.WithAttrs(attrs)

	return &c
}

func (h *indentHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.json = h.json.WithGroup(name)

	return &c
}
