// Package ingest turns evidence sources (local files or URLs) into plain
// text for entity detection and clause tagging. Extraction is best-effort:
// formats without a text path yield a placeholder rather than an error.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ExtractFile reads an evidence file and returns its text content.
// Plain text passes through (with a latin-1 fallback for non-UTF-8 bytes),
// HTML is reduced to visible text, and anything else gets a placeholder
// until a richer extraction path exists.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read evidence file: %w", err)
	}

	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "txt", "md", "text":
		return decodeText(data), nil
	case "html", "htm":
		text, err := VisibleText(string(data))
		if err != nil {
			return "", fmt.Errorf("parse html: %w", err)
		}
		return text, nil
	default:
		return "[unextracted] " + filepath.Base(path), nil
	}
}

// decodeText returns the data as a string, reinterpreting as latin-1 when
// the bytes are not valid UTF-8
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// VisibleText extracts the visible text of an HTML document, skipping
// script, style, noscript and iframe subtrees
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}
