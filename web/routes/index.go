package routes

import (
	"log/slog"
	"net/http"

	"github.com/dasdy/gridfit/nav"
	cs "github.com/dasdy/gridfit/web/components"
)

// IndexHandle lists every subscreen with its utilization.
func (s *ServerHandler) IndexHandle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)

		return
	}

	slog.Info("Handling index page request")

	renderPage(w, &cs.RenderContext{
		Page:        cs.PageTypeIndex,
		Title:       "Dashboard screens",
		Rows:        s.screenRows(s.Layout().Screens),
		Favorites:   s.favoriteLinks(),
		MostVisited: s.mostVisitedLinks(),
	})
}

func (s *ServerHandler) SearchHandle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	slog.Info("Handling search request", "query", query)

	found := nav.Search(s.Layout().Screens, query)

	renderPage(w, &cs.RenderContext{
		Page:  cs.PageTypeSearch,
		Title: "Search: " + query,
		Query: query,
		Rows:  s.screenRows(found),
	})
}

// BackHandle redirects to the previously visited screen.
func (s *ServerHandler) BackHandle(w http.ResponseWriter, r *http.Request) {
	previous, ok := s.Navigator.History.Back()
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	}

	http.Redirect(w, r, cs.ScreenLink(previous), http.StatusSeeOther)
}
