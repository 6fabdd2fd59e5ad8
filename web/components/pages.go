package components

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/dasdy/gridfit/model"
	"github.com/dasdy/gridfit/nav"
)

const styles = `
body { font-family: sans-serif; margin: 1em; background: #f4f5f7; }
nav.crumbs a { color: #2d5f9a; }
.grid { display: grid; gap: 2px; background: #dde1e6; padding: 2px; }
.item { background: #fff; border: 1px solid #9aa5b1; font-size: 11px; overflow: hidden; padding: 2px; }
.item.primary { background: #cfe3ff; }
.item.secondary { background: #e3f0ff; }
.item.filler { background: repeating-linear-gradient(45deg, #eee, #eee 4px, #fff 4px, #fff 8px); }
.optimal { color: #1b7f3b; }
.under { color: #b26a00; }
.over { color: #b3261e; }
table { border-collapse: collapse; }
td, th { padding: 2px 8px; text-align: left; }
`

// htmlWriter stops writing after the first error, which is reported by Err.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}

	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

func (h *htmlWriter) link(href, label string) {
	h.raw("<a")
	h.attr("href", href)
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}

	h.err = c.Render(ctx, h.w)
}

func (h *htmlWriter) Err() error {
	if h.err != nil {
		return fmt.Errorf("could not write html: %w", h.err)
	}

	return nil
}

// Base wraps body into the html document shell.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw("<!DOCTYPE html><html><head><meta charset=\"UTF-8\"><title>")
		h.text(title)
		h.raw("</title><style>" + styles + "</style></head><body>")
		h.raw(`<form action="/search" method="get"><input type="search" name="q" placeholder="Search screens"></form>`)
		h.render(ctx, body)
		h.raw("</body></html>")

		return h.Err()
	})
}

func Breadcrumbs(crumbs []nav.Crumb) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<nav class="crumbs">`)

		for i, c := range crumbs {
			if i > 0 {
				h.raw(" › ")
			}

			if c.Href == "" {
				h.raw("<span>")
				h.text(c.Label)
				h.raw("</span>")
			} else {
				h.link(c.Href, c.Label)
			}
		}

		h.raw("</nav>")

		return h.Err()
	})
}

// ReportLine shows percentage and classification of one report.
func ReportLine(label string, report model.UtilizationReport) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw("<p>")
		h.text(label + ": ")
		h.raw("<span")
		h.attr("class", classificationCSS(report.Classification))
		h.raw(">")
		h.text(fmt.Sprintf("%s %s (%d/%d cells)", report.Display(), report.Classification, report.OccupiedCells, report.TotalCells))
		h.raw("</span>")

		if report.CognitiveBudget > 0 {
			h.text(fmt.Sprintf(" cognitive load %d/%d", report.CognitiveLoad, report.CognitiveBudget))

			if report.OverBudget() {
				h.raw(` <strong class="over">over budget</strong>`)
			}
		}

		h.raw("</p>")

		return h.Err()
	})
}

// Grid draws the items on a CSS grid of the given size.
func Grid(cols, rows int, items []Item) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw("<div")
		h.attr("class", "grid")
		h.attr("style", fmt.Sprintf("grid-template-columns: repeat(%d, 24px); grid-template-rows: repeat(%d, 24px);", cols, rows))
		h.raw(">")

		for _, item := range items {
			h.raw("<div")
			h.attr("class", "item "+string(item.Kind))
			h.attr("style", ToGridArea(item))
			h.attr("title", item.ID+" "+item.Size.String())
			h.raw(">")
			h.text(item.Label)
			h.raw("</div>")
		}

		h.raw("</div>")

		return h.Err()
	})
}

func LinkList(title string, links []Link) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(links) == 0 {
			return nil
		}

		h := &htmlWriter{w: w}

		h.raw("<h3>")
		h.text(title)
		h.raw("</h3><ul>")

		for _, l := range links {
			h.raw("<li>")
			h.link(l.Href, l.Label)
			h.raw("</li>")
		}

		h.raw("</ul>")

		return h.Err()
	})
}

func ScreenTable(rows []ScreenRow) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw("<table><tr><th></th><th>Screen</th><th>Utilization</th><th>Class</th><th>Load</th></tr>")

		for _, r := range rows {
			h.raw("<tr><td>")
			h.text(favoriteMark(r.Favorite))
			h.raw("</td><td>")
			h.link(ScreenLink(r.Report.Screen), r.Title)
			h.raw("</td><td>")
			h.text(r.Report.Display())
			h.raw("</td><td")
			h.attr("class", classificationCSS(r.Report.Classification))
			h.raw(">")
			h.text(string(r.Report.Classification))
			h.raw("</td><td>")
			h.text(strconv.Itoa(r.Report.CognitiveLoad))
			h.raw("</td></tr>")
		}

		h.raw("</table>")

		return h.Err()
	})
}

func screenBody(rc *RenderContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.render(ctx, Breadcrumbs(rc.Crumbs))
		h.raw("<h1>")
		h.text(rc.Title)
		h.raw(" ")
		h.raw(`<form method="post" style="display:inline"`)
		h.attr("action", ToggleFavoriteLink(rc.Screen))
		h.raw("><button")
		h.attr("title", "Toggle favorite")
		h.raw(">")
		h.text(favoriteMark(rc.Favorite))
		h.raw("</button></form></h1>")

		if rc.After != nil {
			h.render(ctx, ReportLine("Before", rc.Report))
			h.render(ctx, ReportLine("After", *rc.After))
		} else {
			h.render(ctx, ReportLine("Utilization", rc.Report))
		}

		if len(rc.Warnings) > 0 {
			h.raw(`<ul class="warnings">`)

			for _, warning := range rc.Warnings {
				h.raw("<li>")
				h.text(warning)
				h.raw("</li>")
			}

			h.raw("</ul>")
		}

		h.raw("<p>")
		h.link(getSwitchModeLink(rc.Screen, rc.Page), getSwitchModeButtonText(rc.Page))
		h.raw("</p>")
		h.render(ctx, Grid(rc.TotalCols, rc.TotalRows, rc.Items))
		h.render(ctx, LinkList("Usually opened next", rc.Suggestions))

		return h.Err()
	})
}

func listBody(rc *RenderContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw("<h1>")
		h.text(rc.Title)
		h.raw("</h1>")

		if rc.Page == PageTypeSearch && len(rc.Rows) == 0 {
			h.raw("<p>No screens match ")
			h.text(strconv.Quote(rc.Query))
			h.raw("</p>")
		} else {
			h.render(ctx, ScreenTable(rc.Rows))
		}

		h.render(ctx, LinkList("Favorites", rc.Favorites))
		h.render(ctx, LinkList("Most visited", rc.MostVisited))

		return h.Err()
	})
}

// Page renders a full document for the page type of rc.
func Page(rc *RenderContext) templ.Component {
	switch rc.Page {
	case PageTypeScreen, PageTypeRebalanced:
		return Base(rc.Title, screenBody(rc))
	default:
		return Base(rc.Title, listBody(rc))
	}
}
