// Package renderer turns finance reports into markdown.
//
// Composite reports are text/template files embedded from templates/, built
// from one main template and its partials. Simple tables are built with the
// markdown package.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/finance"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are available in every template.
var funcs = template.FuncMap{
	"money":   finance.FormatMoney,
	"signed":  signedAmount,
	"icon":    finance.CategoryIcon,
	"percent": percent,
}

// signedAmount formats a transaction amount with the sign of its flow.
func signedAmount(tx finance.Transaction) string {
	return finance.FormatSigned(tx.Signed(), tx.Currency)
}

func percent(p decimal.Decimal) string { return p.StringFixed(1) + "%" }

// RenderDashboard renders the dashboard to a markdown string.
func RenderDashboard(d *finance.Dashboard) string {
	partials := map[string]string{
		"dashboard_title":  "dashboard_title.md",
		"dashboard_month":  "dashboard_month.md",
		"dashboard_recent": "dashboard_recent.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// RenderStatistics renders the period statistics to a markdown string.
func RenderStatistics(s *finance.Statistics) string {
	partials := map[string]string{
		"statistics_title":      "statistics_title.md",
		"statistics_categories": "statistics_categories.md",
		"statistics_monthly":    "statistics_monthly.md",
	}
	return renderTemplate("statistics", "statistics.md", partials, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
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
