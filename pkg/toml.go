package versync

import (
	"bytes"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// tomlDocument keeps the original bytes alongside a decoded view. Reads walk
// the decoded view; writes splice the re-quoted scalar into the original
// bytes, so comments, key order and whitespace survive untouched.
type tomlDocument struct {
	raw  []byte
	root map[string]any
}

func parseTOMLDocument(data []byte) (*tomlDocument, error) {
	root := map[string]any{}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Format: FormatTOML, Err: err}
	}
	return &tomlDocument{raw: data, root: root}, nil
}

func (d *tomlDocument) Get(key string) (string, error) {
	return lookupString(d.root, key)
}

func (d *tomlDocument) Set(key, value string) error {
	// Validates the path and the terminal type before touching bytes.
	if _, err := d.Get(key); err != nil {
		return err
	}
	start, end, err := tomlValueSpan(d.raw, splitKey(key))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(d.raw) + len(value))
	buf.Write(d.raw[:start])
	buf.WriteString(quoteTOMLString(value))
	buf.Write(d.raw[end:])
	raw := buf.Bytes()

	root := map[string]any{}
	if err := toml.Unmarshal(raw, &root); err != nil {
		return &ParseError{Format: FormatTOML, Err: err}
	}
	d.raw = raw
	d.root = root
	return nil
}

func (d *tomlDocument) Bytes() []byte { return d.raw }

// tomlValueSpan locates the byte range of the string literal at the given
// key path, quotes included, using the low-level parser, which exposes the
// raw range of every value node.
func tomlValueSpan(data []byte, path []string) (start, end int, err error) {
	var p unstable.Parser
	p.Reset(data)

	var prefix []string
	addressable := true
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table:
			prefix = tomlKeyParts(e)
			addressable = true
		case unstable.ArrayTable:
			// Entries under [[tables]] need an array index to address;
			// dotted key paths carry none.
			prefix = nil
			addressable = false
		case unstable.KeyValue:
			if !addressable {
				continue
			}
			keyPath := append(append([]string(nil), prefix...), tomlKeyParts(e)...)
			if s, e2, ok := tomlMatchValue(keyPath, e.Value(), path); ok {
				return s, e2, nil
			}
		}
	}
	if perr := p.Error(); perr != nil {
		return 0, 0, &ParseError{Format: FormatTOML, Err: perr}
	}
	return 0, 0, fmt.Errorf("key %q: %w", strings.Join(path, "."), ErrKeyNotFound)
}

// tomlMatchValue reports whether the value at keyPath contains the wanted
// path, descending through inline tables, and returns the matched string
// literal's span.
func tomlMatchValue(keyPath []string, value *unstable.Node, want []string) (int, int, bool) {
	if len(keyPath) > len(want) || !hasPathPrefix(want, keyPath) {
		return 0, 0, false
	}
	if len(keyPath) == len(want) {
		if value.Kind != unstable.String {
			return 0, 0, false
		}
		start := int(value.Raw.Offset)
		return start, start + int(value.Raw.Length), true
	}
	if value.Kind != unstable.InlineTable {
		return 0, 0, false
	}
	it := value.Children()
	for it.Next() {
		child := it.Node()
		if child.Kind != unstable.KeyValue {
			continue
		}
		childPath := append(append([]string(nil), keyPath...), tomlKeyParts(child)...)
		if s, e, ok := tomlMatchValue(childPath, child.Value(), want); ok {
			return s, e, true
		}
	}
	return 0, 0, false
}

// tomlKeyParts collects the (possibly dotted) key of a table header or
// key-value expression.
func tomlKeyParts(n *unstable.Node) []string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func hasPathPrefix(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}
	return true
}

// quoteTOMLString renders a basic (double-quoted) TOML string.
func quoteTOMLString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
