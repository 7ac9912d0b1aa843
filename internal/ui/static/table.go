// Package static renders non-interactive terminal output such as the
// template and catalog listings.
package static

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/history"
	"github.com/raphi011/up/internal/ui/styles"
)

// RenderTable renders headers and rows as borderless aligned columns.
// Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// TemplateRow returns the NAME, DESCRIPTION, TAGS, URL columns for a
// template repository. The name links to the URL.
func TemplateRow(r config.TemplateRepository) []string {
	return []string{
		styles.Link(r.Name, r.URL),
		r.Description,
		strings.Join(r.Tags, ", "),
		styles.MutedStyle.Render(r.URL),
	}
}

// RenderTemplates renders the configured template repositories, marking
// the default one.
func RenderTemplates(repos []config.TemplateRepository, defaultName string) string {
	rows := make([][]string, 0, len(repos))
	for _, r := range repos {
		row := TemplateRow(r)
		if defaultName != "" && strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(defaultName)) {
			row[0] += " " + styles.AccentStyle.Render("(default)")
		}
		rows = append(rows, row)
	}
	return RenderTable([]string{"NAME", "DESCRIPTION", "TAGS", "URL"}, rows)
}

// RenderCatalogs renders the configured template catalogs.
func RenderCatalogs(catalogs []config.TemplateCatalog) string {
	rows := make([][]string, 0, len(catalogs))
	for _, c := range catalogs {
		rows = append(rows, []string{styles.Link(c.Name, c.URL), c.Description, styles.MutedStyle.Render(c.URL)})
	}
	return RenderTable([]string{"NAME", "DESCRIPTION", "URL"}, rows)
}

// RenderHistory renders created projects, most recent first.
func RenderHistory(entries []history.Entry, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Name,
			e.Template,
			e.Package,
			styles.Link(e.Path, "file://"+e.Path),
			styles.MutedStyle.Render(TimeAgo(e.CreatedAt, now)),
		})
	}
	return RenderTable([]string{"NAME", "TEMPLATE", "PACKAGE", "PATH", "CREATED"}, rows)
}

// TimeAgo describes t relative to now in coarse units.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24/7), "week")
	default:
		return plural(int(d.Hours()/24/30), "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
