package versync

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonDocument edits the raw bytes directly: gjson walks key paths without
// re-encoding and sjson splices the replacement value in place, so
// everything outside the replaced literal is byte-for-byte untouched.
type jsonDocument struct {
	raw []byte
}

func parseJSONDocument(data []byte) (*jsonDocument, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		// An empty document has no keys; lookups report ErrKeyNotFound.
		return &jsonDocument{raw: data}, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Format: FormatJSON, Err: errors.New("invalid JSON")}
	}
	return &jsonDocument{raw: data}, nil
}

func (d *jsonDocument) Get(key string) (string, error) {
	if len(bytes.TrimSpace(d.raw)) == 0 {
		return "", fmt.Errorf("key %q: %w", key, ErrKeyNotFound)
	}
	cur := gjson.ParseBytes(d.raw)
	segs := splitKey(key)
	for i, seg := range segs {
		if !cur.IsObject() {
			return "", fmt.Errorf("key %q: %s is not an object: %w", key, segmentName(segs, i), ErrTypeMismatch)
		}
		cur = cur.Get(escapeJSONPathSegment(seg))
		if !cur.Exists() {
			return "", fmt.Errorf("key %q: %w", key, ErrKeyNotFound)
		}
	}
	if cur.Type != gjson.String {
		return "", fmt.Errorf("key %q: %w", key, ErrTypeMismatch)
	}
	return cur.String(), nil
}

func (d *jsonDocument) Set(key, value string) error {
	if _, err := d.Get(key); err != nil {
		return err
	}
	path := joinJSONPath(splitKey(key))
	raw, err := sjson.SetBytes(d.raw, path, value)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	d.raw = raw
	return nil
}

func (d *jsonDocument) Bytes() []byte { return d.raw }

// escapeJSONPathSegment backslash-escapes the characters gjson and sjson
// treat as path syntax, so a segment always matches literally.
func escapeJSONPathSegment(seg string) string {
	var b strings.Builder
	b.Grow(len(seg))
	for _, r := range seg {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func joinJSONPath(segs []string) string {
	escaped := make([]string, len(segs))
	for i, seg := range segs {
		escaped[i] = escapeJSONPathSegment(seg)
	}
	return strings.Join(escaped, ".")
}
