package email

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"github.com/eventhub/eventhub/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer renders the three parts of a notification email: a
// "<name>_subject.txt" line plus "<name>.html" and "<name>.txt" bodies.
type templateRenderer struct {
	html *htmltemplate.Template
	text *template.Template
}

// NewTemplateRenderer parses every embedded email template once.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html: htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html")),
		text: template.Must(template.ParseFS(templateFS, "templates/*.txt")),
	}
}

func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	var sb, hb, tb strings.Builder
	if err := r.text.ExecuteTemplate(&sb, name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := r.html.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), hb.String(), tb.String(), nil
}
