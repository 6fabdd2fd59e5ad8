package layout

import "github.com/dasdy/gridfit/model"

func c(id string, kind model.ComponentKind, w, h, col, row, load int) model.Placement {
	return model.Placement{
		ID:            id,
		Name:          Label(id),
		Kind:          kind,
		Size:          model.Size{Width: w, Height: h},
		Anchor:        model.Anchor{Column: col, Row: row},
		CognitiveLoad: load,
	}
}

const (
	primary   = model.KindPrimary
	secondary = model.KindSecondary
	widget    = model.KindWidget
)

// Builtin returns the stock dashboard subscreens. Anchors were picked by hand
// to be disjoint; cognitive load figures are presentation data only.
func Builtin() *Layout {
	screens := []model.Subscreen{
		{
			ID:              model.ScreenID{Tab: "dashboard", Subscreen: "overview"},
			Title:           "Manager Dashboard",
			CognitiveBudget: 20,
			Placements: []model.Placement{
				c("inbox", primary, 15, 8, 0, 0, 5),
				c("next-match", secondary, 10, 8, 15, 0, 4),
				c("league-position", widget, 8, 5, 0, 8, 2),
				c("form-guide", widget, 8, 5, 8, 8, 2),
				c("board-confidence", widget, 8, 5, 16, 8, 3),
			},
		},
		{
			ID:              model.ScreenID{Tab: "squad", Subscreen: "overview"},
			Title:           "Squad Overview",
			CognitiveBudget: 20,
			Placements: []model.Placement{
				c("squad-list", primary, 20, 12, 0, 0, 7),
				c("player-card", secondary, 12, 12, 20, 0, 5),
				c("squad-filters", widget, 20, 5, 0, 12, 3),
				c("depth-chart", widget, 12, 5, 20, 12, 3),
			},
		},
		{
			ID:              model.ScreenID{Tab: "tactics", Subscreen: "formation"},
			Title:           "Formation Editor",
			CognitiveBudget: 18,
			Placements: []model.Placement{
				c("formation-editor", primary, 18, 14, 0, 0, 8),
				c("role-sliders", secondary, 12, 14, 18, 0, 6),
				c("instructions", widget, 18, 4, 0, 14, 3),
			},
		},
		{
			ID:              model.ScreenID{Tab: "reports", Subscreen: "scouting"},
			Title:           "Scouting Report",
			CognitiveBudget: 16,
			Placements: []model.Placement{
				c("scout-report", primary, 16, 10, 0, 0, 5),
				c("attribute-pizza", secondary, 10, 10, 16, 0, 4),
				c("player-dna", widget, 10, 6, 26, 0, 4),
				c("comparison", widget, 8, 4, 0, 10, 2),
			},
		},
		{
			ID:              model.ScreenID{Tab: "reports", Subscreen: "match"},
			Title:           "Match Report",
			CognitiveBudget: 16,
			Placements: []model.Placement{
				c("match-stats", primary, 16, 12, 0, 0, 5),
				c("xg-timeline", secondary, 12, 6, 16, 0, 4),
				c("player-ratings", widget, 12, 6, 16, 6, 3),
				c("heatmap", widget, 9, 7, 28, 0, 3),
			},
		},
		{
			ID:              model.ScreenID{Tab: "finances", Subscreen: "summary"},
			Title:           "Finances",
			CognitiveBudget: 14,
			Placements: []model.Placement{
				c("balance-chart", primary, 18, 10, 0, 0, 4),
				c("income", secondary, 18, 9, 18, 0, 4),
				c("expenditure", widget, 18, 9, 0, 10, 4),
				c("wage-budget", widget, 18, 9, 18, 9, 3),
			},
		},
		{
			ID:              model.ScreenID{Tab: "finances", Subscreen: "wages"},
			Title:           "Wages",
			CognitiveBudget: 12,
			Placements: []model.Placement{
				c("wage-table", primary, 24, 12, 0, 0, 6),
				c("contract-expiry", secondary, 12, 12, 24, 0, 4),
				c("wage-filters", widget, 36, 6, 0, 12, 3),
			},
		},
		{
			ID:              model.ScreenID{Tab: "training", Subscreen: "schedule"},
			Title:           "Training Schedule",
			CognitiveBudget: 14,
			Placements: []model.Placement{
				c("calendar", primary, 20, 10, 0, 0, 5),
				c("unit-focus", secondary, 10, 10, 20, 0, 3),
				c("intensity", widget, 10, 6, 0, 10, 2),
			},
		},
		{
			ID:              model.ScreenID{Tab: "transfers", Subscreen: "targets"},
			Title:           "Transfer Targets",
			CognitiveBudget: 18,
			Placements: []model.Placement{
				c("shortlist", primary, 18, 12, 0, 0, 6),
				c("search-filters", secondary, 12, 12, 18, 0, 5),
				c("budget-meter", widget, 6, 6, 30, 0, 2),
				c("recent-bids", widget, 18, 5, 0, 12, 3),
			},
		},
		{
			ID:              model.ScreenID{Tab: "club", Subscreen: "facilities"},
			Title:           "Facilities",
			CognitiveBudget: 10,
			Placements: []model.Placement{
				c("facility-grid", primary, 12, 8, 0, 0, 3),
				c("upgrade-queue", secondary, 8, 6, 12, 0, 2),
			},
		},
	}

	return &Layout{
		Grid:    model.DefaultGrid(),
		Band:    model.DefaultBand(),
		Screens: screens,
	}
}
