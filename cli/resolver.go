package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/smartscript/log"
)

// loadConfig is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys may be written flat or nested; nested mappings are joined with
// hyphens, and underscores are accepted in place of hyphens:
//
//	log-level: debug
//	log:
//	  format: text
//	  pretty: false
//	exec:
//	  mime: true
//
// Numbers are handed to kong as strings. A file that cannot be decoded is
// reported and otherwise ignored, so a broken configuration never prevents
// the command from running with its defaults.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	err := yaml.NewDecoder(r).Decode(&raw)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file", slog.Any("error", err))
		}

		return config{}, nil
	}

	cfg := make(config)
	cfg.flatten("", raw)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(k, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := v.(type) {
		case map[string]any:
			c.flatten(key, v)
		default:
			c[key] = scalar(v)
		}
	}
}

// scalar converts decoded YAML numbers into the string form kong parses.
func scalar(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	case nil, string, bool:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Command flags are also looked up under
// the name of the command path, so that "exec: {mime: true}" sets --mime on
// the exec command only.
func (c config) Resolve(
	ktx *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if ktx == nil {
		return nil, nil
	}

	if cmd := ktx.Selected(); cmd != nil {
		if v, ok := c[cmd.Name+"-"+flag.Name]; ok {
			return v, nil
		}
	}

	return nil, nil
}
