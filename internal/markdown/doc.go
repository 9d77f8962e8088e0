// Package markdown turns Markdown article sources into rendered documents:
// front matter and metadata resolution, goldmark rendering with stable
// heading anchors, table of contents extraction and filesystem discovery.
package markdown
