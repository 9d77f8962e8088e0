package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var (
	frontMatterBlock = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n---[ \t]*\n(.*)$`)
	frontMatterLine  = regexp.MustCompile(`^(\w+):\s*(.*)$`)
)

// yamlFormat restricts front matter detection to "---" delimited YAML.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ParseFrontMatter splits source into its front matter fields and Markdown
// body. found is false when the document does not open with a "---" block,
// in which case body is the whole (line ending normalised) document.
//
// A value is the rest of its "key: value" line with one level of matching
// quotes removed. The YAML node tree supplies values only where it keeps the
// text intact: block scalars and keys the line rule cannot read. Comments and
// nulls never replace the line value, so "title: Unity #1 tips" keeps its
// full title. Headers YAML rejects are read line by line.
func ParseFrontMatter(source []byte) (fields map[string]string, body []byte, found bool) {
	normalized := normalizeNewlines(source)

	match := frontMatterBlock.FindSubmatch(normalized)
	if match == nil {
		return nil, normalized, false
	}
	block, body := match[1], match[2]

	lines := parseFrontMatterLines(block)
	fields, err := decodeYAMLFrontMatter(normalized, lines)
	if err != nil {
		fields = lines
	}
	return fields, body, true
}

func decodeYAMLFrontMatter(source []byte, lines map[string]string) (map[string]string, error) {
	var doc yaml.Node
	if _, err := frontmatter.Parse(bytes.NewReader(source), &doc, yamlFormat); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return lines, nil
	}

	fields := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if raw, ok := lines[key.Value]; ok && !isBlockScalar(value) {
			fields[key.Value] = raw
			continue
		}
		if value.Kind == yaml.ScalarNode && value.Tag != "!!null" {
			fields[key.Value] = value.Value
		}
	}
	return fields, nil
}

// isBlockScalar reports a "|" or ">" scalar whose text starts on the next line.
func isBlockScalar(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && (node.Style&(yaml.LiteralStyle|yaml.FoldedStyle)) != 0
}

func parseFrontMatterLines(block []byte) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(string(block), "\n") {
		match := frontMatterLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		fields[match[1]] = unquote(strings.TrimSpace(match[2]))
	}
	return fields
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

func normalizeNewlines(source []byte) []byte {
	out := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
}
