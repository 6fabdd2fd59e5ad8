package routes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/dasdy/gridfit/db"
	"github.com/dasdy/gridfit/grid"
	"github.com/dasdy/gridfit/layout"
	"github.com/dasdy/gridfit/model"
	"github.com/dasdy/gridfit/nav"
	cs "github.com/dasdy/gridfit/web/components"
)

const (
	suggestionLimit  = 5
	mostVisitedLimit = 5
)

var (
	errMissingScreen = errors.New("tab and subscreen are required")
	errUnknownScreen = errors.New("unknown screen")
)

// ServerHandler holds all dependencies needed for the web server handlers.
type ServerHandler struct {
	Storage     db.Storage
	Transitions db.Suggester
	Popularity  db.Ranker
	Navigator   *nav.Navigator
	Options     grid.Options

	layoutLock sync.RWMutex
	layout     *layout.Layout
}

func NewServerHandler(l *layout.Layout, storage db.Storage, transitions db.Suggester, navigator *nav.Navigator) *ServerHandler {
	return &ServerHandler{
		Storage:     storage,
		Transitions: transitions,
		Navigator:   navigator,
		Options:     grid.DefaultOptions(),
		layout:      l,
	}
}

func (s *ServerHandler) Layout() *layout.Layout {
	s.layoutLock.RLock()
	defer s.layoutLock.RUnlock()

	return s.layout
}

// SetLayout swaps the catalog served by the handlers, e.g. after the layout
// file changed on disk.
func (s *ServerHandler) SetLayout(l *layout.Layout) {
	s.layoutLock.Lock()
	defer s.layoutLock.Unlock()

	s.layout = l
}

// SafeRenderTemplate safely renders a templ component to an http.ResponseWriter.
func SafeRenderTemplate(component templ.Component, w http.ResponseWriter) error {
	// Do not write to w because it implies 200 status
	var buf bytes.Buffer

	err := component.Render(context.Background(), &buf)
	if err != nil {
		return fmt.Errorf("could not render template: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", "error", err)

		return fmt.Errorf("could not write to response writer: %w", err)
	}

	return nil
}

func renderPage(w http.ResponseWriter, rc *cs.RenderContext) {
	if err := SafeRenderTemplate(cs.Page(rc), w); err != nil {
		slog.Error("Could not render page", "title", rc.Title, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// screenFromRequest resolves the tab/subscreen query parameters against the
// current catalog.
func (s *ServerHandler) screenFromRequest(r *http.Request) (model.Subscreen, error) {
	id := model.ScreenID{
		Tab:       r.URL.Query().Get("tab"),
		Subscreen: r.URL.Query().Get("subscreen"),
	}

	if id.Tab == "" || id.Subscreen == "" {
		return model.Subscreen{}, errMissingScreen
	}

	screen, ok := s.Layout().Find(id)
	if !ok {
		return model.Subscreen{}, fmt.Errorf("%w: %s", errUnknownScreen, id)
	}

	return screen, nil
}

func writeScreenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errMissingScreen):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, errUnknownScreen):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func screenTitle(screen model.Subscreen) string {
	if screen.Title != "" {
		return screen.Title
	}

	return layout.Label(screen.ID.Tab) + " " + layout.Label(screen.ID.Subscreen)
}

func (s *ServerHandler) screenRows(screens []model.Subscreen) []cs.ScreenRow {
	l := s.Layout()
	rows := make([]cs.ScreenRow, 0, len(screens))

	for _, screen := range screens {
		rows = append(rows, cs.ScreenRow{
			Title:    screenTitle(screen),
			Report:   grid.ComputeUtilization(screen, l.Grid, l.Band),
			Favorite: s.Navigator.Favorites.IsFavorite(screen.ID),
		})
	}

	return rows
}

// screenLink labels id with its title, or with the raw id when the current
// layout no longer has it.
func screenLink(l *layout.Layout, id model.ScreenID) cs.Link {
	label := id.String()
	if screen, ok := l.Find(id); ok {
		label = screenTitle(screen)
	}

	return cs.Link{Label: label, Href: cs.ScreenLink(id)}
}

func (s *ServerHandler) favoriteLinks() []cs.Link {
	l := s.Layout()
	favorites := s.Navigator.Favorites.List()
	links := make([]cs.Link, 0, len(favorites))

	for _, id := range favorites {
		links = append(links, screenLink(l, id))
	}

	return links
}

func (s *ServerHandler) mostVisitedLinks() []cs.Link {
	if s.Popularity == nil {
		return nil
	}

	l := s.Layout()
	top := s.Popularity.Top(mostVisitedLimit)
	links := make([]cs.Link, 0, len(top))

	for _, count := range top {
		links = append(links, screenLink(l, count.Screen))
	}

	return links
}
