package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// Ticket descriptions and chat come from users; raw HTML is already off in goldmark,
// and the policy strips anything else that slips through.
var htmlPolicy = bluemonday.UGCPolicy()

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .25rem .5rem; text-align: left; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// MarkdownToHTML converts a markdown fragment to sanitized HTML.
func MarkdownToHTML(md string) (string, error) {
	md = strings.TrimSpace(md)
	if md == "" {
		return "", nil
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &b); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlPolicy.Sanitize(b.String()), nil
}

// RenderHTML renders the report as a standalone HTML page.
func RenderHTML(in Input, opt Options) (string, error) {
	body, err := MarkdownToHTML(RenderMarkdown(in, opt))
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Ticket report"
	}
	var out bytes.Buffer
	err = pageTemplate.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
