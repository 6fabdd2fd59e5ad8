package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ComponentKind tells the rebalancer which placements it may grow first.
type ComponentKind string

const (
	KindPrimary   ComponentKind = "primary"
	KindSecondary ComponentKind = "secondary"
	KindWidget    ComponentKind = "widget"
	KindFiller    ComponentKind = "filler"
)

type Size struct {
	Width  int
	Height int
}

func (s Size) Area() int {
	return s.Width * s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("w%d h%d", s.Width, s.Height)
}

type Anchor struct {
	Column int
	Row    int
}

// Placement is a component positioned on the grid, in cell units.
type Placement struct {
	ID            string
	Name          string
	Kind          ComponentKind
	Size          Size
	Anchor        Anchor
	CognitiveLoad int
}

func (p Placement) Area() int {
	return p.Size.Area()
}

type GridSpec struct {
	Columns int
	Rows    int
}

func DefaultGrid() GridSpec {
	return GridSpec{Columns: 37, Rows: 19}
}

func (g GridSpec) TotalCells() int {
	if g.Columns <= 0 || g.Rows <= 0 {
		return 0
	}

	return g.Columns * g.Rows
}

// Band is the target utilization range in percent. Edges are inclusive.
type Band struct {
	Min   float64
	Ideal float64
	Max   float64
}

func DefaultBand() Band {
	return Band{Min: 60, Ideal: 70, Max: 80}
}

type Classification string

const (
	Optimal       Classification = "optimal"
	UnderUtilized Classification = "under-utilized"
	OverUtilized  Classification = "over-utilized"
)

var ErrInvalidScreenID = errors.New("invalid screen id")

// ScreenID names a subscreen as a tab/subscreen pair.
type ScreenID struct {
	Tab       string
	Subscreen string
}

func (s ScreenID) String() string {
	return s.Tab + "/" + s.Subscreen
}

func ParseScreenID(raw string) (ScreenID, error) {
	tab, sub, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok || tab == "" || sub == "" || strings.Contains(sub, "/") {
		return ScreenID{}, fmt.Errorf("%w: %q", ErrInvalidScreenID, raw)
	}

	return ScreenID{Tab: tab, Subscreen: sub}, nil
}

type Subscreen struct {
	ID              ScreenID
	Title           string
	CognitiveBudget int
	Placements      []Placement
}

func (s Subscreen) CognitiveLoad() int {
	total := 0
	for _, p := range s.Placements {
		total += p.CognitiveLoad
	}

	return total
}

type UtilizationReport struct {
	Screen          ScreenID       `json:"screen"`
	OccupiedCells   int            `json:"occupiedCells"`
	TotalCells      int            `json:"totalCells"`
	Percent         float64        `json:"percent"`
	Classification  Classification `json:"classification"`
	CognitiveLoad   int            `json:"cognitiveLoad"`
	CognitiveBudget int            `json:"cognitiveBudget"`
}

// Display formats the percentage with one decimal place.
func (r UtilizationReport) Display() string {
	return fmt.Sprintf("%.1f%%", r.Percent)
}

func (r UtilizationReport) OverBudget() bool {
	return r.CognitiveBudget > 0 && r.CognitiveLoad > r.CognitiveBudget
}

func (s ScreenID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ScreenID) UnmarshalText(text []byte) error {
	parsed, err := ParseScreenID(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

type Visit struct {
	Screen    ScreenID
	Timestamp time.Time
}

type ScreenCount struct {
	Screen ScreenID `json:"screen"`
	Count  int      `json:"count"`
}
