package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the document in canonical template syntax. Parsing the
// output yields a document [Equal] to d.
func (d *Document) Format(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, d.String())

	return err
}

// FormatJSON writes the document tree as JSON to the writer.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(d)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the document tree as YAML to the writer.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, d.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}
