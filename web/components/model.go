package components

import (
	"github.com/dasdy/gridfit/model"
	"github.com/dasdy/gridfit/nav"
)

type PageType int

const (
	PageTypeIndex PageType = iota
	PageTypeScreen
	PageTypeRebalanced
	PageTypeSearch
)

// Item is one placement drawn on the grid.
type Item struct {
	ID     string
	Label  string
	Kind   model.ComponentKind
	Size   model.Size
	Anchor model.Anchor
}

type Link struct {
	Label string
	Href  string
}

// ScreenRow is one line of the index and search tables.
type ScreenRow struct {
	Title    string
	Report   model.UtilizationReport
	Favorite bool
}

type RenderContext struct {
	Page      PageType
	Title     string
	Crumbs    []nav.Crumb
	Screen    model.ScreenID
	TotalCols int
	TotalRows int
	Items     []Item
	Report    model.UtilizationReport
	// After is set on the rebalanced page.
	After       *model.UtilizationReport
	Warnings    []string
	Favorite    bool
	Favorites   []Link
	Suggestions []Link
	MostVisited []Link
	Rows        []ScreenRow
	Query       string
}
