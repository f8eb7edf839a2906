package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_WithFrontmatter_SeparatesBlocks(t *testing.T) {
	input := []byte("---\ntitle: Hello\ndate: 2024-01-15\n---\nBody text\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\ndate: 2024-01-15\n"), fm)
	require.Equal(t, []byte("Body text\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, _, err := Split([]byte("---\ntitle: Hello\nBody\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SeparatesBlocks(t *testing.T) {
	input := []byte("---\r\ntitle: Hello\r\n---\r\nBody\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\r\n"), fm)
	require.Equal(t, []byte("Body\r\n"), body)
}

func TestParseFields_ScalarsStringified(t *testing.T) {
	fields, err := ParseFields([]byte("title: Hello\ndate: 2024-01-15\nunlisted: true\nweight: 3\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", fields["title"])
	require.Equal(t, "2024-01-15", fields["date"])
	require.Equal(t, "true", fields["unlisted"])
	require.Equal(t, "3", fields["weight"])
}

func TestParseFields_UnrecognizedKeysPassThrough(t *testing.T) {
	fields, err := ParseFields([]byte("title: Hello\ncustom_key: custom value\n"))
	require.NoError(t, err)
	require.Equal(t, "custom value", fields["custom_key"])
}

func TestParseFields_NestedValue_Rejected(t *testing.T) {
	_, err := ParseFields([]byte("title: Hello\ntags:\n  - a\n  - b\n"))
	require.Error(t, err)
}

func TestParseFields_EmptyValue_EmptyString(t *testing.T) {
	fields, err := ParseFields([]byte("title: Hello\nsubtitle:\n"))
	require.NoError(t, err)
	require.Equal(t, "", fields["subtitle"])
}

func TestParse_FullDocument_FieldsAndBody(t *testing.T) {
	fields, body, err := Parse([]byte("---\ntitle: Hi\ndate: 2024-02-01\n---\n# Heading\n"))
	require.NoError(t, err)
	require.Equal(t, "Hi", fields["title"])
	require.Equal(t, "2024-02-01", fields["date"])
	require.Equal(t, []byte("# Heading\n"), body)
}

func TestParse_NoFrontmatter_EmptyFields(t *testing.T) {
	fields, body, err := Parse([]byte("just a body\n"))
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, []byte("just a body\n"), body)
}
