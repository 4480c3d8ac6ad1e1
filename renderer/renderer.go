// Package renderer renders ledger snapshots as human readable reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/stocks"
)

//go:embed templates/*
var templates embed.FS

// Text renders the snapshot as the classic plain text report:
//
//	Currently held:
//		Bought 50 shares at $1.50
//	Sell History:
//		Sold 100 shares at $2.00 for a profit of $100.00
//	Proceeds: $100.00
//
// A section is omitted when it has no line.
func Text(s stocks.Snapshot) string {
	return renderTemplate("report", "report.txt", nil, s)
}

// Markdown renders the snapshot as a markdown document with a table per
// section.
func Markdown(s stocks.Snapshot) string {
	partials := map[string]string{
		"holdings": "holdings.md",
		"history":  "history.md",
	}
	return renderTemplate("snapshot", "snapshot.md", partials, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
