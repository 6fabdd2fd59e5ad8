package nav

import (
	"net/url"
	"strings"

	"github.com/dasdy/gridfit/layout"
	"github.com/dasdy/gridfit/model"
)

const crumbSeparator = " › "

type Crumb struct {
	Label string
	// Href is empty for the current page.
	Href string
}

// Breadcrumbs builds the Home › Tab › Subscreen trail for a screen.
func Breadcrumbs(screen model.Subscreen) []Crumb {
	title := screen.Title
	if title == "" {
		title = layout.Label(screen.ID.Subscreen)
	}

	return []Crumb{
		{Label: "Home", Href: "/"},
		{Label: layout.Label(screen.ID.Tab), Href: "/search?q=" + url.QueryEscape(screen.ID.Tab)},
		{Label: title},
	}
}

func BreadcrumbString(crumbs []Crumb) string {
	labels := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		labels = append(labels, c.Label)
	}

	return strings.Join(labels, crumbSeparator)
}
