package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	got := slices.Collect(Levels())
	want := []string{"trace", "debug", "info", "warn", "error"}

	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}

	for _, name := range got {
		if ParseLevel(name).String() != name {
			t.Errorf("level %q does not round trip", name)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"TEXT", FormatText},
		{"", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"json", "text"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Info("ignored")
	l.TraceContext(context.Background(), "ignored")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on zero Logger created a handler")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero Logger does not report defaults")
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(false), WithTimeLayout("none"))
	l.Info("hello", slog.Int("n", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["msg"] != "hello" || rec["level"] != "INFO" || rec["n"] != float64(3) {
		t.Errorf("record = %v", rec)
	}

	if _, ok := rec["time"]; ok {
		t.Errorf("time present with layout none: %v", rec)
	}
}

func TestLogger_PrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none")).With(slog.String("component", "test"))
	l.Warn("indented")

	if !strings.Contains(buf.String(), "\n  \"msg\": \"indented\"") {
		t.Errorf("output not indented: %q", buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["component"] != "test" {
		t.Errorf("record = %v", rec)
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn), WithFormat(FormatText), WithPretty(false))

	l.Trace("t")
	l.Debug("d")
	l.Info("i")

	if buf.Len() != 0 {
		t.Fatalf("messages below the level were written: %q", buf.String())
	}

	l.Warn("w")
	l.Error("e")

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "level=ERROR") {
		t.Errorf("output = %q", out)
	}

	buf.Reset()

	l.Wrap(WithLevel(LevelTrace)).Trace("now visible")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("trace output = %q", buf.String())
	}
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithTimeLayout(""), WithLevel(LevelTrace))
	l = l.With(slog.String("run", "1"))

	l.Debug("compiled", slog.Int("statements", 2),
		slog.Group("src", slog.String("path", "a b.lox")))

	want := "DEBUG compiled run=1 statements=2 src.path=\"a b.lox\"\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()

	l.WithGroup("g").With(slog.Bool("ok", true)).Trace("grouped")

	if want := "TRACE grouped run=1 g.ok=true\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("message", "boom"), slog.Int("line", 4))
}

func TestLogger_LogValuer(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithTimeLayout(""))
	l.Error("failed", slog.Any("error", valuer{}))

	if want := "ERROR failed error.message=boom error.line=4\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithTimeLayout(""), WithCaller(true))
	l.Info("where")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller missing: %q", buf.String())
	}
}

func TestTimeLayout(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"", ""},
		{"none", ""},
		{"RFC3339", "2024-01-02T15:04:05Z"},
		{"Kitchen", "3:04PM"},
		{"2006", "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("layout %q = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithFormat(FormatText), WithPretty(false), WithTimeLayout("")))
	Config(WithLevel(LevelDebug))

	Debug("from package", slog.String("k", "v"))
	With(slog.Int("n", 1)).Info("with attrs")
	ErrorContext(context.Background(), "failure", slog.Any("error", errors.New("x")))

	out := buf.String()
	for _, want := range []string{"msg=\"from package\" k=v", "msg=\"with attrs\" n=1", "level=ERROR"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
