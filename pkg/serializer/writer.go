// Package serializer renders command output in the formats the CLI
// supports: json, yaml, and a flattened FIELD/VALUE table.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format selects an output rendering.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported set.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	}
	return true
}

// SupportedFormats returns the supported format names.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// Writer serializes values to a destination.
type Writer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by writers holding a resource that needs explicit
// release, such as an output file.
type Closer interface {
	Close() error
}

type streamWriter struct {
	format Format
	out    io.Writer
	file   *os.File
}

// NewWriter returns a Writer rendering in the given format. Unknown formats
// fall back to JSON; a nil output falls back to stdout.
func NewWriter(format Format, out io.Writer) Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	if out == nil {
		out = os.Stdout
	}
	return &streamWriter{format: format, out: out}
}

// NewStdoutWriter returns a Writer targeting stdout.
func NewStdoutWriter(format Format) Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer targeting the given path, or
// stdout when the path is empty or "-". File writers implement Closer.
func NewFileWriterOrStdout(format Format, path string) (Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &streamWriter{format: format, out: f, file: f}, nil
}

func (w *streamWriter) Serialize(_ context.Context, data any) error {
	switch w.format {
	case FormatYAML:
		return w.writeYAML(data)
	case FormatTable:
		return w.writeTable(data)
	default:
		return w.writeJSON(data)
	}
}

// Close releases the backing file, if any. Safe to call more than once.
func (w *streamWriter) Close() error {
	if w.file == nil {
		return nil
	}
	f := w.file
	w.file = nil
	return f.Close()
}

func (w *streamWriter) writeJSON(data any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}
	return nil
}

func (w *streamWriter) writeYAML(data any) error {
	enc := yaml.NewEncoder(w.out)
	defer enc.Close()
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to yaml: %w", err)
	}
	return nil
}

func (w *streamWriter) writeTable(data any) error {
	rows := flatten("", reflect.ValueOf(data))
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w.out, "<empty>")
		return err
	}

	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.key, row.value)
	}
	return tw.Flush()
}

type tableRow struct {
	key   string
	value string
}

// flatten walks the value depth-first, producing one dotted-path row per
// scalar leaf. Nil pointers and interfaces are skipped rather than printed.
func flatten(prefix string, v reflect.Value) []tableRow {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		var rows []tableRow
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			rows = append(rows, flatten(joinKey(prefix, t.Field(i).Name), v.Field(i))...)
		}
		return rows

	case reflect.Map:
		keys := make([]string, 0, v.Len())
		byKey := make(map[string]reflect.Value, v.Len())
		for _, k := range v.MapKeys() {
			name := fmt.Sprint(k.Interface())
			keys = append(keys, name)
			byKey[name] = v.MapIndex(k)
		}
		sort.Strings(keys)
		var rows []tableRow
		for _, name := range keys {
			rows = append(rows, flatten(joinKey(prefix, name), byKey[name])...)
		}
		return rows

	case reflect.Slice, reflect.Array:
		var rows []tableRow
		for i := 0; i < v.Len(); i++ {
			rows = append(rows, flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i))...)
		}
		return rows

	case reflect.Invalid:
		return nil

	default:
		return []tableRow{{key: prefix, value: fmt.Sprint(v.Interface())}}
	}
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
