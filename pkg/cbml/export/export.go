// Package export renders CBML values as JSON or YAML and decodes them into
// Go values.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"cbml-lang/cbml/pkg/cbml/types"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or yaml)", s)
}

// Marshal encodes v in the given format. Struct members are written in
// name order; an enum field becomes a single-key object.
func Marshal(v types.Value, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes v to w.
func Write(w io.Writer, v types.Value, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v.Interface()); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v.Interface()); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Unmarshal stores v in the value pointed to by target, using the same
// field mapping as JSON: struct tags `json:"name"` select members.
func Unmarshal(v types.Value, target any) error {
	data, err := json.Marshal(v.Interface())
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}
