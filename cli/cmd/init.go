package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/smartscript/log"
	"github.com/ardnew/smartscript/pkg"
	"github.com/ardnew/smartscript/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return pkg.ErrWriteConfig.Wrapf("%s", confPath).Wrap(pkg.ErrFileExists)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return pkg.ErrWriteConfig.Wrap(err)
	}

	b, err := yaml.MarshalWithOptions(
		configDocument(ktx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return pkg.ErrWriteConfig.Wrap(pkg.ErrYAMLMarshal.Wrap(err))
	}

	if err := os.WriteFile(confPath, b, 0o600); err != nil {
		return pkg.ErrWriteConfig.Wrapf("%s", confPath).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("bytes", len(b)),
	)

	return nil
}

// configDocument collects the application flags into a YAML mapping. Flags
// in a group are nested under the group key with the key prefix removed;
// the remaining flags stay at the top level.
func configDocument(ktx *kong.Context) yaml.MapSlice {
	var (
		doc    yaml.MapSlice
		groups = map[string]int{} // group key -> index in doc
	)

	ignore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val, ok := configValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		if flag.Group == nil || flag.Group.Key == "" {
			doc = append(doc, yaml.MapItem{Key: flag.Name, Value: val})

			continue
		}

		key := flag.Group.Key
		name := strings.TrimPrefix(flag.Name, key+"-")

		idx, ok := groups[key]
		if !ok {
			idx = len(doc)
			groups[key] = idx
			doc = append(doc, yaml.MapItem{Key: key, Value: yaml.MapSlice{}})
		}

		sub, _ := doc[idx].Value.(yaml.MapSlice)
		doc[idx].Value = append(sub, yaml.MapItem{Key: name, Value: val})
	}

	return doc
}

// configValue converts a flag value to a plain YAML scalar or sequence.
// Empty strings and empty slices are omitted.
func configValue(v any) (any, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return nil, false
		}

		return rv.String(), true

	case reflect.Bool:
		return rv.Bool(), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true

	case reflect.Float32, reflect.Float64:
		return rv.Float(), true

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil, false
		}

		out := make([]any, 0, rv.Len())

		for i := range rv.Len() {
			if e, ok := configValue(rv.Index(i).Interface()); ok {
				out = append(out, e)
			}
		}

		return out, len(out) > 0

	default:
		return nil, false
	}
}
