package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/serroba/shorty/internal/shortener"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Pages renders the interstitial HTML that hands a mobile visitor over to an app.
type Pages struct {
	tmpl *template.Template
}

func NewPages() (*Pages, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse interstitial templates: %w", err)
	}

	return &Pages{tmpl: tmpl}, nil
}

type pageData struct {
	URL      template.URL
	Fallback template.URL
}

// Render picks the page for the decision's platform and whether a fallback exists.
func (p *Pages) Render(d shortener.Decision) ([]byte, error) {
	name := "redirect." + string(d.Platform)
	if d.Fallback != "" {
		name += ".fallback"
	}

	name += ".html"

	// App URLs use custom schemes that html/template would otherwise replace. Script
	// schemes are rejected when the link is created.
	data := pageData{URL: template.URL(d.Target), Fallback: template.URL(d.Fallback)}

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	return buf.Bytes(), nil
}
