// Package frontmatter splits and parses the YAML metadata block at the head
// of a post source file.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[start:], closeLine) {
		return []byte{}, content[start+len(closeLine):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// ParseFields parses raw frontmatter YAML into a flat string map. Values are
// taken as scalar source text, so an unquoted date stays `2024-01-15` instead
// of resolving to a time value. Nested structures are rejected since post
// metadata is a flat key/value block.
func ParseFields(fm []byte) (map[string]string, error) {
	fields := map[string]string{}
	if len(fm) == 0 {
		return fields, nil
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(fm, &raw); err != nil {
		return nil, err
	}
	for key, node := range raw {
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("frontmatter key %q: nested values are not supported", key)
		}
		if node.Tag == "!!null" {
			fields[key] = ""
			continue
		}
		fields[key] = node.Value
	}
	return fields, nil
}

// Parse splits a document and parses its frontmatter in one step.
func Parse(content []byte) (fields map[string]string, body []byte, err error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	if !had {
		return map[string]string{}, body, nil
	}
	fields, err = ParseFields(fm)
	if err != nil {
		return nil, nil, err
	}
	return fields, body, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
