package nav

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dasdy/gridfit/model"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type matchRank int

const (
	noMatch matchRank = iota
	fuzzyMatch
	substringMatch
	prefixMatch
	exactMatch
)

func rankField(field, query string) matchRank {
	field = strings.ToLower(field)

	switch {
	case field == query:
		return exactMatch
	case strings.HasPrefix(field, query):
		return prefixMatch
	case strings.Contains(field, query):
		return substringMatch
	case fuzzy.MatchNormalizedFold(query, field):
		return fuzzyMatch
	default:
		return noMatch
	}
}

func rankScreen(screen model.Subscreen, query string) matchRank {
	return max(
		rankField(screen.ID.String(), query),
		rankField(screen.ID.Tab, query),
		rankField(screen.ID.Subscreen, query),
		rankField(screen.Title, query),
	)
}

// Search matches query against tab, subscreen and title, case-insensitively.
// Exact matches come first, then prefix and substring matches. Queries whose
// letters only appear in order ("fclt" for facilities) rank last.
// An empty query matches nothing.
func Search(screens []model.Subscreen, query string) []model.Subscreen {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []model.Subscreen{}
	}

	type ranked struct {
		screen model.Subscreen
		rank   matchRank
	}

	matches := make([]ranked, 0)

	for _, s := range screens {
		if r := rankScreen(s, query); r != noMatch {
			matches = append(matches, ranked{s, r})
		}
	}

	slices.SortStableFunc(matches, func(a, b ranked) int {
		return cmp.Or(
			-cmp.Compare(a.rank, b.rank),
			cmp.Compare(a.screen.ID.String(), b.screen.ID.String()),
		)
	})

	result := make([]model.Subscreen, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.screen)
	}

	return result
}
