package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true))

	if p.Mode() != "cpu" || p.Path() != "/tmp/prof" || !p.quiet {
		t.Errorf("New() = %+v", p)
	}

	if New().Mode() != "" {
		t.Error("zero Profiler has a mode")
	}
}

func TestStart_Disabled(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no mode", nil},
		{"unknown mode", []Option{WithMode("bogus"), WithPath(t.TempDir())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.opts...).Start()
			if _, ok := s.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", s)
			}

			s.Stop()
		})
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without %s tag", modes, Tag)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v", modes)
	}
}
