package versync

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// yamlDocument keeps the parsed AST (comments included) for rewriting and a
// decoded view for reads, mirroring the TOML accessor's split.
type yamlDocument struct {
	file *ast.File
	raw  []byte
	root map[string]any
}

func parseYAMLDocument(data []byte) (*yamlDocument, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, &ParseError{Format: FormatYAML, Err: err}
	}
	root := map[string]any{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, &ParseError{Format: FormatYAML, Err: err}
		}
	}
	return &yamlDocument{file: file, raw: data, root: root}, nil
}

func (d *yamlDocument) Get(key string) (string, error) {
	return lookupString(d.root, key)
}

func (d *yamlDocument) Set(key, value string) error {
	if _, err := d.Get(key); err != nil {
		return err
	}
	builder := (&yaml.PathBuilder{}).Root()
	for _, seg := range splitKey(key) {
		builder = builder.Child(seg)
	}
	path := builder.Build()

	// The replacement is double-quoted so values like "1.2" stay strings.
	if err := path.ReplaceWithReader(d.file, strings.NewReader(strconv.Quote(value))); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	raw := []byte(d.file.String())
	root := map[string]any{}
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return &ParseError{Format: FormatYAML, Err: err}
	}
	d.raw = raw
	d.root = root
	return nil
}

func (d *yamlDocument) Bytes() []byte { return d.raw }
