package components

import (
	"fmt"
	"net/url"

	"github.com/dasdy/gridfit/model"
)

func screenQuery(id model.ScreenID) string {
	v := url.Values{}
	v.Set("tab", id.Tab)
	v.Set("subscreen", id.Subscreen)

	return v.Encode()
}

func ScreenLink(id model.ScreenID) string {
	return "/screen?" + screenQuery(id)
}

func RebalancedLink(id model.ScreenID) string {
	return "/screen/rebalanced?" + screenQuery(id)
}

func ToggleFavoriteLink(id model.ScreenID) string {
	return "/favorites/toggle?" + screenQuery(id)
}

// getSwitchModeLink returns the link between the stored and the rebalanced view.
func getSwitchModeLink(id model.ScreenID, currentPageType PageType) string {
	switch currentPageType {
	case PageTypeScreen:
		return RebalancedLink(id)
	case PageTypeRebalanced:
		return ScreenLink(id)
	default:
		return "/"
	}
}

func getSwitchModeButtonText(currentPageType PageType) string {
	switch currentPageType {
	case PageTypeScreen:
		return "Rebalance"
	case PageTypeRebalanced:
		return "View Stored Layout"
	default:
		return ""
	}
}

// ToGridArea positions an item with CSS grid lines, which are 1-based.
func ToGridArea(item Item) string {
	return fmt.Sprintf("grid-column: %d / span %d; grid-row: %d / span %d;",
		item.Anchor.Column+1, item.Size.Width, item.Anchor.Row+1, item.Size.Height)
}

func classificationCSS(c model.Classification) string {
	switch c {
	case model.Optimal:
		return "optimal"
	case model.UnderUtilized:
		return "under"
	case model.OverUtilized:
		return "over"
	default:
		return "unknown"
	}
}

func favoriteMark(favorite bool) string {
	if favorite {
		return "★"
	}

	return "☆"
}
