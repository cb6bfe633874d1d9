package versync

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the on-disk syntax of a target document.
type Format int

const (
	// FormatAuto defers to inference from the file extension.
	FormatAuto Format = iota
	FormatTOML
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// UnmarshalText decodes a Format directly from the optional "format" key of
// a target entry. An empty value means auto-detection.
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "":
		*f = FormatAuto
	case "toml":
		*f = FormatTOML
	case "json":
		*f = FormatJSON
	case "yaml", "yml":
		*f = FormatYAML
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(text))
	}
	return nil
}

// FormatFromPath infers a document format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return FormatAuto, false
	}
}

// Document is an editable in-memory representation of one target file. It
// retains the source layout, so a rewrite after Set differs from the
// original bytes only in the replaced scalar's literal.
type Document interface {
	// Get returns the string value at the dotted key path. Every
	// non-terminal segment must resolve to a mapping and the terminal
	// segment to a string; a missing segment fails with ErrKeyNotFound
	// and a wrongly typed one with ErrTypeMismatch.
	Get(key string) (string, error)

	// Set replaces the string value at the dotted key path. It locates the
	// value exactly as Get does and never creates missing keys.
	Set(key, value string) error

	// Bytes renders the document back to file content.
	Bytes() []byte
}

// ParseDocument parses raw file content into an editable Document. The
// format set is small and closed; adding a format means implementing
// Document and extending this switch.
func ParseDocument(format Format, data []byte) (Document, error) {
	switch format {
	case FormatTOML:
		return parseTOMLDocument(data)
	case FormatJSON:
		return parseJSONDocument(data)
	case FormatYAML:
		return parseYAMLDocument(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// splitKey breaks a dotted key path into its segments.
func splitKey(key string) []string {
	return strings.Split(key, ".")
}

// validKey reports whether a dotted key path has at least one segment and no
// empty segments.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, seg := range splitKey(key) {
		if seg == "" {
			return false
		}
	}
	return true
}

// lookupString walks a decoded document tree segment by segment and returns
// the string at the terminal segment.
func lookupString(root map[string]any, key string) (string, error) {
	var cur any = root
	segs := splitKey(key)
	for i, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", fmt.Errorf("key %q: %s is not a mapping: %w", key, segmentName(segs, i), ErrTypeMismatch)
		}
		cur, ok = m[seg]
		if !ok {
			return "", fmt.Errorf("key %q: %w", key, ErrKeyNotFound)
		}
	}
	s, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, ErrTypeMismatch)
	}
	return s, nil
}

func segmentName(segs []string, i int) string {
	if i == 0 {
		return "document root"
	}
	return fmt.Sprintf("segment %q", strings.Join(segs[:i], "."))
}
