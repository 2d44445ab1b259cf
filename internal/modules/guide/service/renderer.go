package service

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"ritualcoach/internal/modules/guide/domain"
	"ritualcoach/internal/platform/markdown"
)

// Renderer turns guides into Markdown documents and standalone HTML pages.
// Raw HTML in flow text is escaped because WithUnsafe is not set.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(extension.Typographer),
		goldmark.WithRendererOptions(
			goldmarkHTML.WithHardWraps(),
			goldmarkHTML.WithXHTML(),
		),
	)}
}

// Markdown renders the guide as a frontmatter document. When existing holds a
// previous export, its extra frontmatter keys and any text outside the
// generated block are kept. A broken or newer existing document is an error
// so hand-written notes are never overwritten.
func (r *Renderer) Markdown(g domain.Guide, existing string) (string, error) {
	var prev domain.Meta
	body, _, err := markdown.DecodeFrontmatter(existing, &prev)
	if err != nil {
		return "", fmt.Errorf("read existing guide: %w", err)
	}
	if err := prev.Check(); err != nil {
		return "", err
	}
	meta := g.Meta()
	meta.Extra = prev.Extra
	body = markdown.ReplaceManagedBlock(body, domain.ManagedStart, domain.ManagedEnd, g.Body())
	return markdown.EncodeFrontmatter(meta, body)
}

// HTML renders the guide as a complete HTML page.
func (r *Renderer) HTML(g domain.Guide) (string, error) {
	var content bytes.Buffer
	if err := r.md.Convert([]byte(g.Body()), &content); err != nil {
		return "", fmt.Errorf("render guide html: %w", err)
	}
	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(g.Title()))
	page.WriteString("</head>\n<body>\n")
	page.Write(content.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}
