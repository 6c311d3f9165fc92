package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	separator = "---\n"
	closing   = "\n---\n"
)

// Frontmatter is a note's YAML header. Keys keep the order they had in the
// file; new keys are appended.
type Frontmatter struct {
	mapping *yaml.Node
}

func NewFrontmatter() *Frontmatter {
	return &Frontmatter{mapping: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// ParseFrontmatter separates the YAML header from the note body. Notes
// without a header yield an empty Frontmatter and the content unchanged.
func ParseFrontmatter(content string) (*Frontmatter, string, error) {
	fm := NewFrontmatter()
	if !strings.HasPrefix(content, separator) {
		return fm, content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, closing)
	if idx < 0 {
		return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(rest[:idx]), &doc); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		if doc.Content[0].Kind != yaml.MappingNode {
			return nil, "", fmt.Errorf("invalid frontmatter: expected a mapping")
		}
		fm.mapping = doc.Content[0]
	}
	return fm, rest[idx+len(closing):], nil
}

func (f *Frontmatter) Set(key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return fmt.Errorf("encode frontmatter %s: %w", key, err)
	}
	for i := 0; i+1 < len(f.mapping.Content); i += 2 {
		if f.mapping.Content[i].Value == key {
			f.mapping.Content[i+1] = &v
			return nil
		}
	}
	f.mapping.Content = append(f.mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, &v)
	return nil
}

func (f *Frontmatter) Keys() []string {
	keys := make([]string, 0, len(f.mapping.Content)/2)
	for i := 0; i+1 < len(f.mapping.Content); i += 2 {
		keys = append(keys, f.mapping.Content[i].Value)
	}
	return keys
}

// Map decodes the header into plain Go values.
func (f *Frontmatter) Map() (map[string]any, error) {
	out := map[string]any{}
	if err := f.mapping.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	return out, nil
}

// Render joins header and body. An empty header is omitted.
func (f *Frontmatter) Render(body string) (string, error) {
	if len(f.mapping.Content) == 0 {
		return body, nil
	}
	raw, err := yaml.Marshal(f.mapping)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
