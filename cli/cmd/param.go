package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/pkg"
)

// paramFunctions are available to every --param expression in addition to
// the parameters bound before it.
var paramFunctions = []expr.Option{
	expr.Function(
		"env",
		func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
		new(func(string) string),
	),
}

// evalParams binds each "NAME=EXPR" in order on top of base. An expression
// may refer to any parameter bound before it by name, and to env("VAR").
//
//	-p count=3 -p total='count * 2.5' -p user='env("USER")'
func evalParams(base map[string]lang.Value, bindings []string) (map[string]lang.Value, error) {
	params := maps.Clone(base)
	if params == nil {
		params = make(map[string]lang.Value, len(bindings))
	}

	for _, binding := range bindings {
		name, src, ok := strings.Cut(binding, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, pkg.ErrInvalidParam.Wrapf("%q: want NAME=EXPR", binding)
		}

		env := make(map[string]any, len(params))
		for k, v := range params {
			env[k] = v.Native()
		}

		opts := append([]expr.Option{expr.Env(env)}, paramFunctions...)

		program, err := expr.Compile(src, opts...)
		if err != nil {
			return nil, pkg.ErrInvalidParam.Wrapf("%s", name).Wrap(err)
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return nil, pkg.ErrInvalidParam.Wrapf("%s", name).Wrap(err)
		}

		v, err := lang.ValueOf(out)
		if err != nil {
			return nil, pkg.ErrInvalidParam.Wrapf("%s", name).Wrap(err)
		}

		params[name] = v
	}

	return params, nil
}

// loadParams reads a YAML mapping of parameter names to scalar values.
func loadParams(path string) (map[string]lang.Value, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}
	defer f.Close()

	params, err := decodeValues(f)
	if err != nil {
		return nil, pkg.ErrInvalidParam.Wrapf("%s", path).Wrap(err)
	}

	return params, nil
}

// decodeValues decodes a YAML mapping of scalars into values. An empty
// document yields an empty map.
func decodeValues(r io.Reader) (map[string]lang.Value, error) {
	var raw map[string]any

	err := yaml.NewDecoder(r).Decode(&raw)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	values := make(map[string]lang.Value, len(raw))

	for k, x := range raw {
		v, err := lang.ValueOf(x)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}

		values[k] = v
	}

	return values, nil
}

// encodeValues writes values as a YAML mapping with keys in sorted order.
func encodeValues(w io.Writer, values map[string]lang.Value) error {
	native := make(map[string]any, len(values))
	for k, v := range values {
		native[k] = v.Native()
	}

	b, err := yaml.MarshalWithOptions(native, yaml.Indent(2))
	if err != nil {
		return pkg.ErrYAMLMarshal.Wrap(err)
	}

	_, err = w.Write(b)

	return err
}

func valuesAttr(key string, values map[string]lang.Value) slog.Attr {
	attrs := make([]any, 0, len(values))
	for k, v := range values {
		attrs = append(attrs, slog.Any(k, v))
	}

	return slog.Group(key, attrs...)
}
