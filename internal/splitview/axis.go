package splitview

import (
	"fmt"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

// Direction specifies the main axis along which views are laid out.
type Direction uint8

const (
	Row    Direction = iota // Views laid out left-to-right
	Column                  // Views laid out top-to-bottom
)

// String returns the direction name used in configuration and events.
func (d Direction) String() string {
	switch d {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Row || d == Column
}

// ParseDirection converts "row" or "column" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "row":
		return Row, nil
	case "column":
		return Column, nil
	default:
		return Row, core.ErrValidation(core.CodeInvalidDirection,
			fmt.Sprintf("direction must be row or column, got %q", s))
	}
}

// Point is a pointer position in host cells.
type Point struct {
	X, Y int
}

// Size is a width/height pair in cells.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned rectangle in host cells.
type Rect struct {
	X, Y, Width, Height int
}

// Axis describes, for one direction, which geometric properties the engine
// reads and writes.
type Axis struct {
	Direction Direction
	// Cursor is the pointer style shown while a handle is active.
	Cursor string

	main  func(Size) int
	cross func(Size) int
	coord func(Point) int
	rect  func(offset, size, cross int) Rect
}

var axes = [...]Axis{
	Row: {
		Direction: Row,
		Cursor:    "col-resize",
		main:      func(s Size) int { return s.Width },
		cross:     func(s Size) int { return s.Height },
		coord:     func(p Point) int { return p.X },
		rect: func(offset, size, cross int) Rect {
			return Rect{X: offset, Y: 0, Width: size, Height: cross}
		},
	},
	Column: {
		Direction: Column,
		Cursor:    "row-resize",
		main:      func(s Size) int { return s.Height },
		cross:     func(s Size) int { return s.Width },
		coord:     func(p Point) int { return p.Y },
		rect: func(offset, size, cross int) Rect {
			return Rect{X: 0, Y: offset, Width: cross, Height: size}
		},
	},
}

// AxisOf returns the axis for a direction. Unknown directions map to Row.
func AxisOf(d Direction) Axis {
	if !d.Valid() {
		return axes[Row]
	}
	return axes[d]
}

// Main returns the extent of s along the main axis.
func (a Axis) Main(s Size) int { return a.main(s) }

// Cross returns the extent of s along the cross axis.
func (a Axis) Cross(s Size) int { return a.cross(s) }

// Coord returns the pointer coordinate on the main axis.
func (a Axis) Coord(p Point) int { return a.coord(p) }

// Rect builds the rectangle of a view at offset with the given main size,
// spanning the whole cross extent.
func (a Axis) Rect(offset, size, cross int) Rect { return a.rect(offset, size, cross) }
