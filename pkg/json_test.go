package versync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONGet(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			content:  `{"version": "1.0.0"}`,
			key:      "version",
			expected: "1.0.0",
		},
		{
			name:     "nested key",
			content:  `{"package": {"name": "test", "version": "2.0.0"}}`,
			key:      "package.version",
			expected: "2.0.0",
		},
		{
			name:     "deeply nested key",
			content:  `{"a": {"b": {"c": "3.0.0"}}}`,
			key:      "a.b.c",
			expected: "3.0.0",
		},
		{
			name:     "unicode value",
			content:  `{"version": "1.0.0-ß"}`,
			key:      "version",
			expected: "1.0.0-ß",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseJSONDocument([]byte(tt.content))
			require.NoError(t, err)

			value, err := doc.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestJSONGetErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		wantErr error
	}{
		{
			name:    "missing key",
			content: `{"version": "1.0.0"}`,
			key:     "nonexistent",
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "missing nested key",
			content: `{"package": {"name": "x"}}`,
			key:     "package.version",
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "empty document",
			content: "",
			key:     "version",
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "empty object",
			content: `{}`,
			key:     "version",
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "terminal is an object",
			content: `{"package": {"version": "1.0.0"}}`,
			key:     "package",
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "terminal is a number",
			content: `{"version": 5}`,
			key:     "version",
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "terminal is an array",
			content: `{"version": ["1.0.0"]}`,
			key:     "version",
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "intermediate segment is a string",
			content: `{"package": "not an object"}`,
			key:     "package.version",
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "root is an array",
			content: `["1.0.0"]`,
			key:     "version",
			wantErr: ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseJSONDocument([]byte(tt.content))
			require.NoError(t, err)

			_, err = doc.Get(tt.key)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJSONParseError(t *testing.T) {
	_, err := parseJSONDocument([]byte(`{"version": `))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, FormatJSON, parseErr.Format)
}

func TestJSONSetPreservesLayout(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		key      string
		value    string
		expected string
	}{
		{
			name:     "compact object keeps key order",
			content:  `{"version":"0.1.0","name":"x"}`,
			key:      "version",
			value:    "0.2.0",
			expected: `{"version":"0.2.0","name":"x"}`,
		},
		{
			name:     "pretty printed document keeps indentation",
			content:  "{\n  \"name\": \"test\",\n  \"version\": \"1.0.0\",\n  \"private\": true\n}\n",
			key:      "version",
			value:    "1.1.0",
			expected: "{\n  \"name\": \"test\",\n  \"version\": \"1.1.0\",\n  \"private\": true\n}\n",
		},
		{
			name:     "nested key",
			content:  "{\n  \"package\": {\n    \"version\": \"1.0.0\"\n  }\n}\n",
			key:      "package.version",
			value:    "2.0.0",
			expected: "{\n  \"package\": {\n    \"version\": \"2.0.0\"\n  }\n}\n",
		},
		{
			name:     "value needing escaping",
			content:  `{"version":"0.1.0"}`,
			key:      "version",
			value:    `0.2.0+"x"`,
			expected: `{"version":"0.2.0+\"x\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseJSONDocument([]byte(tt.content))
			require.NoError(t, err)

			require.NoError(t, doc.Set(tt.key, tt.value))
			assert.Equal(t, tt.expected, string(doc.Bytes()))

			value, err := doc.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestJSONSetErrors(t *testing.T) {
	content := `{"package":{"version":"1.0.0","count":2}}`
	doc, err := parseJSONDocument([]byte(content))
	require.NoError(t, err)

	require.ErrorIs(t, doc.Set("package.missing", "2.0.0"), ErrKeyNotFound)
	require.ErrorIs(t, doc.Set("package.count", "2.0.0"), ErrTypeMismatch)
	require.ErrorIs(t, doc.Set("package", "2.0.0"), ErrTypeMismatch)

	// Failed sets leave the document untouched.
	assert.Equal(t, content, string(doc.Bytes()))
}
