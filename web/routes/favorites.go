package routes

import (
	"log/slog"
	"net/http"

	cs "github.com/dasdy/gridfit/web/components"
)

// ToggleFavoriteHandle flips the favorite state of a screen and sends the
// browser back to the screen.
func (s *ServerHandler) ToggleFavoriteHandle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	screen, err := s.screenFromRequest(r)
	if err != nil {
		writeScreenError(w, err)

		return
	}

	favorite, err := s.Navigator.Favorites.Toggle(screen.ID)
	if err != nil {
		slog.Error("Could not toggle favorite", "screen", screen.ID.String(), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.Info("Toggled favorite", "screen", screen.ID.String(), "favorite", favorite)

	http.Redirect(w, r, cs.ScreenLink(screen.ID), http.StatusSeeOther)
}
