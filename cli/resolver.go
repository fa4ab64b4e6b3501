package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML config files.
//
// Nested mappings are flattened by joining keys with "-", so both
//
//	log:
//	  level: debug
//
// and
//
//	log-level: debug
//
// set --log-level. Keys may use "_" in place of "-". Sequences supply
// repeatable flags such as --define. Command-line flags override config
// file values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML config: %w", err)
	}

	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flat map of flag names.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = flagValue(value)
	}
}

// flagValue converts a decoded YAML value to the form kong decodes flags
// from. Numbers become strings and sequences become []any of strings.
func flagValue(v any) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = fmt.Sprint(flagValue(elem))
		}

		return out

	case uint64:
		return strconv.FormatUint(v, 10)

	case int64:
		return strconv.FormatInt(v, 10)

	case int:
		return strconv.Itoa(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}
