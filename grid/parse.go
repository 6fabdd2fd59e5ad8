package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasdy/gridfit/model"
)

// ParseSize reads the "w<W> h<H>" encoding. Tokens may come in any order but
// each dimension must appear exactly once.
func ParseSize(raw string) (model.Size, error) {
	var (
		size          model.Size
		seenW, seenH  bool
		width, height int
		err           error
	)

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.Size{}, fmt.Errorf("%w: empty size", ErrInvalidPlacement)
	}

	for _, token := range strings.Fields(trimmed) {
		if len(token) < 2 {
			return model.Size{}, fmt.Errorf("%w: unexpected token %q in %q", ErrInvalidPlacement, token, raw)
		}

		switch token[0] {
		case 'w', 'W':
			if seenW {
				return model.Size{}, fmt.Errorf("%w: width given twice in %q", ErrInvalidPlacement, raw)
			}

			width, err = strconv.Atoi(token[1:])
			if err != nil {
				return model.Size{}, fmt.Errorf("%w: could not parse width: %w", ErrInvalidPlacement, err)
			}

			seenW = true
		case 'h', 'H':
			if seenH {
				return model.Size{}, fmt.Errorf("%w: height given twice in %q", ErrInvalidPlacement, raw)
			}

			height, err = strconv.Atoi(token[1:])
			if err != nil {
				return model.Size{}, fmt.Errorf("%w: could not parse height: %w", ErrInvalidPlacement, err)
			}

			seenH = true
		default:
			return model.Size{}, fmt.Errorf("%w: unexpected token %q in %q", ErrInvalidPlacement, token, raw)
		}
	}

	if !seenW || !seenH {
		return model.Size{}, fmt.Errorf("%w: size %q needs both w and h", ErrInvalidPlacement, raw)
	}

	if width <= 0 || height <= 0 {
		return model.Size{}, fmt.Errorf("%w: size %q must be positive", ErrInvalidPlacement, raw)
	}

	size.Width = width
	size.Height = height

	return size, nil
}

// Validate checks that a placement has a positive size and a non-negative anchor.
// Placements hanging past the grid edge are allowed; they still count towards
// the occupied cells.
func Validate(p model.Placement) error {
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return fmt.Errorf("%w: %q has non-positive size %s", ErrInvalidPlacement, p.Name, p.Size)
	}

	if p.Anchor.Column < 0 || p.Anchor.Row < 0 {
		return fmt.Errorf("%w: %q has negative anchor (%d, %d)", ErrInvalidPlacement, p.Name, p.Anchor.Column, p.Anchor.Row)
	}

	return nil
}
