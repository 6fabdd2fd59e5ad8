package routes

import (
	"log/slog"
	"net/http"

	"github.com/dasdy/gridfit/grid"
	"github.com/dasdy/gridfit/layout"
	"github.com/dasdy/gridfit/model"
	"github.com/dasdy/gridfit/nav"
	cs "github.com/dasdy/gridfit/web/components"
)

func toItems(placements []model.Placement) []cs.Item {
	items := make([]cs.Item, 0, len(placements))

	for _, p := range placements {
		label := p.Name
		if label == "" {
			label = layout.Label(p.ID)
		}

		items = append(items, cs.Item{ID: p.ID, Label: label, Kind: p.Kind, Size: p.Size, Anchor: p.Anchor})
	}

	return items
}

// BuildScreenRenderContext builds the render context for a stored screen.
func (s *ServerHandler) BuildScreenRenderContext(screen model.Subscreen) cs.RenderContext {
	l := s.Layout()

	suggestions := make([]cs.Link, 0, suggestionLimit)

	if s.Transitions != nil {
		for _, next := range s.Transitions.Suggest(screen.ID, suggestionLimit) {
			suggestions = append(suggestions, screenLink(l, next.Screen))
		}
	}

	return cs.RenderContext{
		Page:        cs.PageTypeScreen,
		Title:       screenTitle(screen),
		Crumbs:      nav.Breadcrumbs(screen),
		Screen:      screen.ID,
		TotalCols:   l.Grid.Columns,
		TotalRows:   l.Grid.Rows,
		Items:       toItems(screen.Placements),
		Report:      grid.ComputeUtilization(screen, l.Grid, l.Band),
		Favorite:    s.Navigator.Favorites.IsFavorite(screen.ID),
		Suggestions: suggestions,
	}
}

// BuildRebalancedRenderContext runs the rebalancer on screen and shows the
// outcome next to the original report.
func (s *ServerHandler) BuildRebalancedRenderContext(screen model.Subscreen) (cs.RenderContext, error) {
	l := s.Layout()

	result, err := grid.RebalanceScreen(screen, l.Grid, l.Band, s.Options)
	if err != nil {
		return cs.RenderContext{}, err
	}

	warnings := make([]string, 0, len(result.Warnings))
	for _, warning := range result.Warnings {
		warnings = append(warnings, warning.Error())
	}

	after := result.After

	return cs.RenderContext{
		Page:      cs.PageTypeRebalanced,
		Title:     screenTitle(screen) + " (rebalanced)",
		Crumbs:    nav.Breadcrumbs(screen),
		Screen:    screen.ID,
		TotalCols: l.Grid.Columns,
		TotalRows: l.Grid.Rows,
		Items:     toItems(result.Placements),
		Report:    result.Before,
		After:     &after,
		Warnings:  warnings,
		Favorite:  s.Navigator.Favorites.IsFavorite(screen.ID),
	}, nil
}

func (s *ServerHandler) recordVisit(id model.ScreenID) {
	s.Navigator.Visit(id)

	if s.Transitions != nil {
		s.Transitions.HandleVisitNow(id)
	}

	if s.Popularity != nil {
		s.Popularity.HandleVisitNow(id)
	}

	if s.Storage != nil {
		if err := s.Storage.StoreVisit(id); err != nil {
			slog.Error("Could not store visit", "screen", id.String(), "error", err)
		}
	}
}

// ScreenHandle renders one subscreen and records the visit.
func (s *ServerHandler) ScreenHandle(w http.ResponseWriter, r *http.Request) {
	screen, err := s.screenFromRequest(r)
	if err != nil {
		slog.Warn("Bad screen request", "query", r.URL.RawQuery, "error", err)
		writeScreenError(w, err)

		return
	}

	slog.Info("Handling screen request", "screen", screen.ID.String())

	renderContext := s.BuildScreenRenderContext(screen)

	s.recordVisit(screen.ID)

	renderPage(w, &renderContext)
}

func (s *ServerHandler) RebalancedHandle(w http.ResponseWriter, r *http.Request) {
	screen, err := s.screenFromRequest(r)
	if err != nil {
		writeScreenError(w, err)

		return
	}

	renderContext, err := s.BuildRebalancedRenderContext(screen)
	if err != nil {
		slog.Error("Could not rebalance", "screen", screen.ID.String(), "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)

		return
	}

	renderPage(w, &renderContext)
}
