package layout

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

func GetBinaryPath() string {
	// TODO: parameterize;
	//nolint:dogsled
	_, b, _, _ := runtime.Caller(0)

	// Root folder of this project
	fp := filepath.Join(filepath.Dir(b), "..")

	return fp
}

// OpenPath opens absolute paths as-is. Relative paths are tried against the
// working directory first and then against the project root.
func OpenPath(path string) (*os.File, error) {
	var err error

	var file *os.File

	if filepath.IsAbs(path) {
		slog.Info("Opening absolute path", "path", path)
		file, err = os.Open(path)
	} else {
		file, err = os.Open(path)
		if err != nil {
			slog.Info("Opening relative path", "path", path)
			file, err = os.Open(filepath.Join(GetBinaryPath(), path))
		}
	}

	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}

	return file, nil
}

var labels = map[string]string{
	"inbox":            "✉ Inbox",
	"next-match":       "⚽ Next Match",
	"league-table":     "League Table",
	"league-position":  "League Position",
	"form-guide":       "Form Guide",
	"board-confidence": "Board Confidence",
	"squad-list":       "Squad",
	"player-card":      "Player Card",
	"squad-filters":    "⚙ Filters",
	"search-filters":   "⚙ Filters",
	"wage-filters":     "⚙ Filters",
	"depth-chart":      "Depth Chart",
	"formation-editor": "Formation",
	"role-sliders":     "Roles",
	"attribute-pizza":  "Attribute Pizza",
	"player-dna":       "Player DNA",
	"xg-timeline":      "xG Timeline",
	"balance-chart":    "£ Balance",
	"wage-budget":      "£ Wage Budget",
	"budget-meter":     "£ Budget",
}

// Label returns the display label for a component id. Unknown ids are turned
// from kebab-case into title case.
func Label(id string) string {
	if v, ok := labels[id]; ok {
		return v
	}

	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}
