package db

import (
	"iter"

	"github.com/dasdy/gridfit/model"
)

// Tracker consumes screen visits as they happen.
type Tracker interface {
	HandleVisitNow(screen model.ScreenID)
}

// Suggester is a tracker that can propose the next screen.
type Suggester interface {
	Tracker
	Suggest(from model.ScreenID, limit int) []model.ScreenCount
}

// Ranker is a tracker that knows the most visited screens.
type Ranker interface {
	Tracker
	Top(limit int) []model.ScreenCount
}

type Storage interface {
	StoreVisit(screen model.ScreenID) error
	AllVisits() (iter.Seq[model.Visit], error)
	LoadFavorites() ([]model.ScreenID, error)
	SaveFavorites(favorites []model.ScreenID) error
	Close()
}
