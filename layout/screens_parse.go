package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dasdy/gridfit/grid"
	"github.com/dasdy/gridfit/model"
	"gopkg.in/yaml.v3"
)

type ComponentDescriptor struct {
	ID            string `json:"id"                      yaml:"id"`
	Name          string `json:"name"                    yaml:"name"`
	Kind          string `json:"kind,omitempty"          yaml:"kind,omitempty"`
	Size          string `json:"size"                    yaml:"size"`
	Column        int    `json:"column"                  yaml:"column"`
	Row           int    `json:"row"                     yaml:"row"`
	CognitiveLoad int    `json:"cognitiveLoad,omitempty" yaml:"cognitiveLoad,omitempty"`
}

type ScreenDescriptor struct {
	Tab             string                `json:"tab"                       yaml:"tab"`
	Subscreen       string                `json:"subscreen"                 yaml:"subscreen"`
	Title           string                `json:"title,omitempty"           yaml:"title,omitempty"`
	CognitiveBudget int                   `json:"cognitiveBudget,omitempty" yaml:"cognitiveBudget,omitempty"`
	Components      []ComponentDescriptor `json:"components"                yaml:"components"`
}

type GridDescriptor struct {
	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows"    yaml:"rows"`
}

type BandDescriptor struct {
	Min   float64 `json:"min"   yaml:"min"`
	Ideal float64 `json:"ideal" yaml:"ideal"`
	Max   float64 `json:"max"   yaml:"max"`
}

// LayoutFile is the on-disk shape of a layout, shared by JSON and YAML.
type LayoutFile struct {
	Grid    *GridDescriptor    `json:"grid,omitempty" yaml:"grid,omitempty"`
	Band    *BandDescriptor    `json:"band,omitempty" yaml:"band,omitempty"`
	Screens []ScreenDescriptor `json:"screens"        yaml:"screens"`
}

// Layout is a decoded set of subscreens together with the grid they live on.
type Layout struct {
	Grid    model.GridSpec
	Band    model.Band
	Screens []model.Subscreen
	// Skipped counts components dropped because of malformed data.
	Skipped int
}

func (l *Layout) Find(id model.ScreenID) (model.Subscreen, bool) {
	for _, s := range l.Screens {
		if s.ID == id {
			return s, true
		}
	}

	return model.Subscreen{}, false
}

func (l *Layout) IDs() []model.ScreenID {
	ids := make([]model.ScreenID, 0, len(l.Screens))
	for _, s := range l.Screens {
		ids = append(ids, s.ID)
	}

	return ids
}

// Reports computes a utilization report for every screen, in catalog order.
func (l *Layout) Reports() []model.UtilizationReport {
	reports := make([]model.UtilizationReport, 0, len(l.Screens))
	for _, s := range l.Screens {
		reports = append(reports, grid.ComputeUtilization(s, l.Grid, l.Band))
	}

	return reports
}

// Replace swaps the placements of a screen, returning false for unknown ids.
func (l *Layout) Replace(id model.ScreenID, placements []model.Placement) bool {
	for i := range l.Screens {
		if l.Screens[i].ID == id {
			l.Screens[i].Placements = placements

			return true
		}
	}

	return false
}

func LoadJSON(reader io.Reader) (*Layout, error) {
	var file LayoutFile

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("could not decode layout JSON: %w", err)
	}

	return file.toLayout()
}

func LoadYAML(reader io.Reader) (*Layout, error) {
	var file LayoutFile

	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("could not decode layout YAML: %w", err)
	}

	return file.toLayout()
}

// Load opens path and picks the decoder by extension.
func Load(path string) (*Layout, error) {
	reader, err := OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("could not open layout file %s. %w", path, err)
	}
	defer reader.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(reader)
	case ".json":
		return LoadJSON(reader)
	default:
		return nil, fmt.Errorf("unsupported layout file extension %q", filepath.Ext(path))
	}
}

// LoadOrBuiltin loads path, or returns the built-in catalog when path is empty.
func LoadOrBuiltin(path string) (*Layout, error) {
	if path == "" {
		return Builtin(), nil
	}

	return Load(path)
}

func (f *LayoutFile) toLayout() (*Layout, error) {
	result := &Layout{
		Grid:    model.DefaultGrid(),
		Band:    model.DefaultBand(),
		Screens: make([]model.Subscreen, 0, len(f.Screens)),
	}

	if f.Grid != nil {
		if f.Grid.Columns <= 0 || f.Grid.Rows <= 0 {
			return nil, fmt.Errorf("grid must be positive, got %dx%d", f.Grid.Columns, f.Grid.Rows)
		}

		result.Grid = model.GridSpec{Columns: f.Grid.Columns, Rows: f.Grid.Rows}
	}

	if f.Band != nil {
		if f.Band.Min > f.Band.Ideal || f.Band.Ideal > f.Band.Max {
			return nil, fmt.Errorf("band must satisfy min <= ideal <= max, got %v/%v/%v", f.Band.Min, f.Band.Ideal, f.Band.Max)
		}

		result.Band = model.Band{Min: f.Band.Min, Ideal: f.Band.Ideal, Max: f.Band.Max}
	}

	seen := make(map[model.ScreenID]bool)

	for _, sd := range f.Screens {
		id := model.ScreenID{Tab: sd.Tab, Subscreen: sd.Subscreen}
		if sd.Tab == "" || sd.Subscreen == "" {
			return nil, fmt.Errorf("%w: screen needs tab and subscreen, got %q", model.ErrInvalidScreenID, id)
		}

		if seen[id] {
			return nil, fmt.Errorf("duplicate screen %s", id)
		}

		seen[id] = true

		screen := model.Subscreen{
			ID:              id,
			Title:           sd.Title,
			CognitiveBudget: sd.CognitiveBudget,
			Placements:      make([]model.Placement, 0, len(sd.Components)),
		}

		for i, cd := range sd.Components {
			placement, err := cd.toPlacement()
			if err != nil {
				slog.Warn("Skipping component", "screen", id, "index", i, "error", err)

				result.Skipped++

				continue
			}

			screen.Placements = append(screen.Placements, placement)
		}

		result.Screens = append(result.Screens, screen)
	}

	return result, nil
}

func (cd ComponentDescriptor) toPlacement() (model.Placement, error) {
	size, err := grid.ParseSize(cd.Size)
	if err != nil {
		return model.Placement{}, err
	}

	kind := model.ComponentKind(cd.Kind)
	if kind == "" {
		kind = model.KindWidget
	}

	placement := model.Placement{
		ID:            cd.ID,
		Name:          cd.Name,
		Kind:          kind,
		Size:          size,
		Anchor:        model.Anchor{Column: cd.Column, Row: cd.Row},
		CognitiveLoad: cd.CognitiveLoad,
	}

	if placement.Name == "" {
		placement.Name = Label(cd.ID)
	}

	if err := grid.Validate(placement); err != nil {
		return model.Placement{}, err
	}

	return placement, nil
}

// ToFile converts a layout back to its on-disk shape.
func ToFile(l *Layout) LayoutFile {
	file := LayoutFile{
		Grid:    &GridDescriptor{Columns: l.Grid.Columns, Rows: l.Grid.Rows},
		Band:    &BandDescriptor{Min: l.Band.Min, Ideal: l.Band.Ideal, Max: l.Band.Max},
		Screens: make([]ScreenDescriptor, 0, len(l.Screens)),
	}

	for _, s := range l.Screens {
		sd := ScreenDescriptor{
			Tab:             s.ID.Tab,
			Subscreen:       s.ID.Subscreen,
			Title:           s.Title,
			CognitiveBudget: s.CognitiveBudget,
			Components:      make([]ComponentDescriptor, 0, len(s.Placements)),
		}

		for _, p := range s.Placements {
			sd.Components = append(sd.Components, ComponentDescriptor{
				ID:            p.ID,
				Name:          p.Name,
				Kind:          string(p.Kind),
				Size:          p.Size.String(),
				Column:        p.Anchor.Column,
				Row:           p.Anchor.Row,
				CognitiveLoad: p.CognitiveLoad,
			})
		}

		file.Screens = append(file.Screens, sd)
	}

	return file
}

func WriteJSON(w io.Writer, l *Layout) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(ToFile(l)); err != nil {
		return fmt.Errorf("could not encode layout JSON: %w", err)
	}

	return nil
}

func WriteYAML(w io.Writer, l *Layout) (err error) {
	encoder := yaml.NewEncoder(w)

	defer func() {
		if closeErr := encoder.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not flush layout YAML: %w", closeErr)
		}
	}()

	if err := encoder.Encode(ToFile(l)); err != nil {
		return fmt.Errorf("could not encode layout YAML: %w", err)
	}

	return nil
}

// Save writes l to path, choosing the encoding by extension.
func Save(path string, l *Layout) (err error) {
	var write func(io.Writer, *Layout) error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		write = WriteYAML
	case ".json":
		write = WriteJSON
	default:
		return fmt.Errorf("unsupported layout file extension %q", filepath.Ext(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close %s: %w", path, closeErr)
		}
	}()

	return write(file, l)
}
