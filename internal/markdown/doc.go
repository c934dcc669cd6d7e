// Package markdown parses listing source files (YAML frontmatter plus a
// Markdown body) and renders listing bodies to HTML with goldmark.
package markdown
