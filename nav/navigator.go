package nav

import (
	"fmt"

	"github.com/dasdy/gridfit/model"
)

// Navigator is the per-process navigation state of the dashboard.
type Navigator struct {
	History   *History
	Favorites *Favorites
}

func NewNavigator(store FavoritesStore, historyLimit int) (*Navigator, error) {
	favorites, err := NewFavorites(store)
	if err != nil {
		return nil, fmt.Errorf("could not create navigator: %w", err)
	}

	return &Navigator{History: NewHistory(historyLimit), Favorites: favorites}, nil
}

// Visit records screen as the current one.
func (n *Navigator) Visit(screen model.ScreenID) {
	n.History.Push(screen)
}
