package routes_test

import (
	"iter"
	"slices"

	"github.com/dasdy/gridfit/layout"
	"github.com/dasdy/gridfit/model"
	"github.com/dasdy/gridfit/nav"
	"github.com/dasdy/gridfit/web/routes"
)

var (
	squadOverview    = model.ScreenID{Tab: "squad", Subscreen: "overview"}
	tacticsFormation = model.ScreenID{Tab: "tactics", Subscreen: "formation"}
	financesWages    = model.ScreenID{Tab: "finances", Subscreen: "wages"}
)

// SimpleStorageMock is a simple manual mock implementation of the Storage interface
type SimpleStorageMock struct {
	Visits      []model.ScreenID
	Favorites   []model.ScreenID
	ReturnError error
	SaveCount   int
}

func (m *SimpleStorageMock) StoreVisit(screen model.ScreenID) error {
	if m.ReturnError != nil {
		return m.ReturnError
	}

	m.Visits = append(m.Visits, screen)

	return nil
}

func (m *SimpleStorageMock) AllVisits() (iter.Seq[model.Visit], error) {
	visits := make([]model.Visit, 0, len(m.Visits))
	for _, v := range m.Visits {
		visits = append(visits, model.Visit{Screen: v})
	}

	return slices.Values(visits), m.ReturnError
}

func (m *SimpleStorageMock) LoadFavorites() ([]model.ScreenID, error) {
	return m.Favorites, nil
}

func (m *SimpleStorageMock) SaveFavorites(favorites []model.ScreenID) error {
	if m.ReturnError != nil {
		return m.ReturnError
	}

	m.SaveCount++
	m.Favorites = favorites

	return nil
}

func (m *SimpleStorageMock) Close() {
	// No-op for testing
}

// SuggesterMock is a simple mock implementation of the Suggester interface
type SuggesterMock struct {
	ReturnSuggestions []model.ScreenCount
	Handled           []model.ScreenID
	LastFrom          model.ScreenID
}

func (m *SuggesterMock) HandleVisitNow(screen model.ScreenID) {
	m.Handled = append(m.Handled, screen)
}

func (m *SuggesterMock) Suggest(from model.ScreenID, limit int) []model.ScreenCount {
	m.LastFrom = from

	if len(m.ReturnSuggestions) > limit {
		return m.ReturnSuggestions[:limit]
	}

	return m.ReturnSuggestions
}

// RankerMock is a simple mock implementation of the Ranker interface
type RankerMock struct {
	ReturnTop []model.ScreenCount
	Handled   []model.ScreenID
}

func (m *RankerMock) HandleVisitNow(screen model.ScreenID) {
	m.Handled = append(m.Handled, screen)
}

func (m *RankerMock) Top(limit int) []model.ScreenCount {
	if len(m.ReturnTop) > limit {
		return m.ReturnTop[:limit]
	}

	return m.ReturnTop
}

// MockServerHandler bundles the handler with the mocks behind it.
type MockServerHandler struct {
	*routes.ServerHandler
	MockStorage   *SimpleStorageMock
	MockSuggester *SuggesterMock
	MockRanker    *RankerMock
}

func setupMockServerHandler(favorites ...model.ScreenID) MockServerHandler {
	mockStorage := &SimpleStorageMock{Favorites: favorites}
	mockSuggester := &SuggesterMock{}
	mockRanker := &RankerMock{}

	navigator, err := nav.NewNavigator(mockStorage, 10)
	if err != nil {
		panic(err)
	}

	handler := routes.NewServerHandler(layout.Builtin(), mockStorage, mockSuggester, navigator)
	handler.Popularity = mockRanker

	return MockServerHandler{
		ServerHandler: handler,
		MockStorage:   mockStorage,
		MockSuggester: mockSuggester,
		MockRanker:    mockRanker,
	}
}
