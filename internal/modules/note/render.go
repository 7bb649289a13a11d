package note

import (
	"bytes"
	"html/template"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in the note is omitted; the renderer is not configured unsafe.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

func RenderMarkdown(text string) string {
	if text == "" {
		return ""
	}
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return template.HTMLEscapeString(text)
	}
	return out.String()
}

// NewView renders n for the home page. A nil note yields nil.
func NewView(n *models.OwnerNoteModel) *View {
	if n == nil {
		return nil
	}
	v := &View{Content: n.Content, HTML: RenderMarkdown(n.Content)}
	if n.UpdatedAt != nil {
		v.UpdatedAt = n.UpdatedAt.Format(time.RFC3339)
	}
	return v
}
