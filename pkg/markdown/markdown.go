// Package markdown converts between Ghost's stored HTML and Markdown, and
// implements the pull/push workflow used to edit posts locally.
package markdown

import (
	"bytes"
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// renderer renders CommonMark with tables. Fenced code blocks are part of
// CommonMark and keep their info string as a language-xxx class.
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// ToHTML renders Markdown source as HTML.
func ToHTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// FromHTML converts HTML to Markdown with ATX headings. Code blocks carrying
// a language-xxx class become fenced blocks tagged with that language.
func FromHTML(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return md, nil
}
