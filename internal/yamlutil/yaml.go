// Package yamlutil reads and writes wikipreview configuration documents.
// Configuration code goes through Decode and Encode and never imports the
// YAML library directly.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize caps a configuration document.
const MaxDocumentSize = 1 << 20

var (
	ErrNilTarget        = errors.New("yamlutil: nil decode target")
	ErrDocumentTooLarge = errors.New("yamlutil: configuration document too large")
	ErrInvalidDocument  = errors.New("yamlutil: invalid configuration document")
)

// Decode fills v from a configuration document. Keys without a matching
// field are errors, and the error text quotes the offending source lines.
// A blank document leaves v untouched.
func Decode(data []byte, v any) error {
	if v == nil {
		return ErrNilTarget
	}
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), MaxDocumentSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w:\n%s", ErrInvalidDocument, yaml.FormatError(err, false, true))
	}
	return nil
}

// Encode prints v the way `wikipreview config` shows it: two-space
// indentation, indented sequences, and multi-line strings such as inline
// CSS styles as literal blocks.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: encoding configuration: %w", err)
	}
	return out, nil
}
