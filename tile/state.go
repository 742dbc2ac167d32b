// Package tile defines the tile state stored in every voxel of a chunk.
package tile

import "fmt"

// TileID identifies a tile type. VoidID is reserved for empty space.
type TileID uint64

// VoidID is the id of the void tile.
const VoidID TileID = 0

// StateFormat selects how a tile's extra state is interpreted by consumers.
type StateFormat uint8

const (
	// FormatNone means the tile carries no extra state.
	FormatNone StateFormat = iota
	// FormatOriented means the tile faces one of the six Face directions.
	FormatOriented
	// FormatFluid means the tile holds a fluid level.
	FormatFluid
)

// String returns the format name.
func (f StateFormat) String() string {
	switch f {
	case FormatNone:
		return "None"
	case FormatOriented:
		return "Oriented"
	case FormatFluid:
		return "Fluid"
	default:
		return fmt.Sprintf("StateFormat(%d)", uint8(f))
	}
}

// IsValid reports whether f is one of the known formats.
func (f StateFormat) IsValid() bool {
	return f <= FormatFluid
}

// State is the value stored per voxel. It is small and comparable so that
// equal states share one palette entry. The zero value is the void tile.
type State struct {
	id     TileID
	format StateFormat
}

// Void returns the void tile state.
func Void() State {
	return State{}
}

// New returns the state of tile id with no extra state.
func New(id TileID) State {
	return State{id: id}
}

// WithFormat returns the state of tile id using format.
func WithFormat(id TileID, format StateFormat) State {
	return State{id: id, format: format}
}

// ID returns the tile id.
func (s State) ID() TileID {
	return s.id
}

// Format returns the state format.
func (s State) Format() StateFormat {
	return s.format
}

// IsVoid reports whether s has the void id, whatever its format. Only Void()
// itself is the zero value that sections leave unallocated.
func (s State) IsVoid() bool {
	return s.id == VoidID
}

func (s State) String() string {
	if s.format == FormatNone {
		return fmt.Sprintf("tile(%d)", s.id)
	}

	return fmt.Sprintf("tile(%d, %s)", s.id, s.format)
}
