package title

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the subset of a document's YAML header shown in the tree.
type FrontMatter struct {
	Title       string
	Description string
}

// ParseFrontMatter reads a leading "---" delimited YAML block. Content
// without one, or with YAML that does not parse, yields an empty value.
func ParseFrontMatter(content []byte) FrontMatter {
	block, ok := frontMatterBlock(content)
	if !ok {
		return FrontMatter{}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(block, &raw); err != nil {
		return FrontMatter{}
	}

	return FrontMatter{
		Title:       stringField(raw, "title"),
		Description: stringField(raw, "description"),
	}
}

// StripFrontMatter returns content without its leading YAML block. Content
// without a complete block is returned unchanged.
func StripFrontMatter(content []byte) []byte {
	_, body, ok := splitFrontMatter(content)
	if !ok {
		return content
	}
	return body
}

func frontMatterBlock(content []byte) ([]byte, bool) {
	block, _, ok := splitFrontMatter(content)
	return block, ok
}

func splitFrontMatter(content []byte) (block, body []byte, ok bool) {
	content = bytes.TrimPrefix(content, []byte("\uFEFF"))
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, nil, false
	}
	rest := content[len("---\n"):]

	end := 0
	if !bytes.HasPrefix(rest, []byte("---")) {
		end = bytes.Index(rest, []byte("\n---"))
		if end < 0 {
			return nil, nil, false
		}
		end++
	}
	block = rest[:end]

	body = rest[end+len("---"):]
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}
	return block, body, true
}

func stringField(raw map[string]any, key string) string {
	s, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
