package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type resolverFlags struct {
	Log struct {
		Level  string `default:"info"`
		Pretty bool   `default:"true" negatable:""`
	} `embed:"" prefix:"log-"`

	MaxDepth int      `default:"10"`
	Define   []string `sep:"none"   short:"D"`
	CacheDir string
}

func parseWithYAML(t *testing.T, doc string, args ...string) resolverFlags {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	var flags resolverFlags

	parser, err := kong.New(&flags,
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Configuration(loadYAML, path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatal(err)
	}

	return flags
}

func TestLoadYAML(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		args       []string
		wantLevel  string
		wantPretty bool
		wantDepth  int
		wantDefine []string
		wantCache  string
	}{
		{
			name:       "empty",
			doc:        "",
			wantLevel:  "info",
			wantPretty: true,
			wantDepth:  10,
		},
		{
			name:       "flat keys",
			doc:        "log-level: debug\nmax-depth: 64\n",
			wantLevel:  "debug",
			wantPretty: true,
			wantDepth:  64,
		},
		{
			name:       "nested keys",
			doc:        "log:\n  level: warn\n  pretty: false\n",
			wantLevel:  "warn",
			wantPretty: false,
			wantDepth:  10,
		},
		{
			name:       "underscores",
			doc:        "max_depth: 5\ncache_dir: /tmp/lox\n",
			wantLevel:  "info",
			wantPretty: true,
			wantDepth:  5,
			wantCache:  "/tmp/lox",
		},
		{
			name:       "sequence",
			doc:        "define:\n  - a=1\n  - b=max(a, 2)\n",
			wantLevel:  "info",
			wantPretty: true,
			wantDepth:  10,
			wantDefine: []string{"a=1", "b=max(a, 2)"},
		},
		{
			name:       "flags override",
			doc:        "log-level: debug\nmax-depth: 64\n",
			args:       []string{"--log-level=error", "--max-depth=3"},
			wantLevel:  "error",
			wantPretty: true,
			wantDepth:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseWithYAML(t, tt.doc, tt.args...)

			if got.Log.Level != tt.wantLevel || got.Log.Pretty != tt.wantPretty {
				t.Errorf("log = %+v, want level %q pretty %v",
					got.Log, tt.wantLevel, tt.wantPretty)
			}

			if got.MaxDepth != tt.wantDepth {
				t.Errorf("MaxDepth = %d, want %d", got.MaxDepth, tt.wantDepth)
			}

			if !slices.Equal(got.Define, tt.wantDefine) {
				t.Errorf("Define = %q, want %q", got.Define, tt.wantDefine)
			}

			if got.CacheDir != tt.wantCache {
				t.Errorf("CacheDir = %q, want %q", got.CacheDir, tt.wantCache)
			}
		})
	}
}

func TestLoadYAML_Invalid(t *testing.T) {
	if _, err := loadYAML(strings.NewReader("log: [unclosed")); err == nil {
		t.Error("loadYAML() accepted invalid YAML")
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"uint", uint64(7), "7"},
		{"int", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"bool", true, true},
		{"string", "x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flagValue(tt.in); got != tt.want {
				t.Errorf("flagValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
