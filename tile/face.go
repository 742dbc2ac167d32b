package tile

import "fmt"

// Face is one of the six axis-aligned faces of a voxel.
type Face uint8

const (
	Front Face = iota
	Back
	Right
	Left
	Top
	Bottom
)

// Faces lists every face in declaration order.
var Faces = [6]Face{Front, Back, Right, Left, Top, Bottom}

func (f Face) String() string {
	switch f {
	case Front:
		return "Front"
	case Back:
		return "Back"
	case Right:
		return "Right"
	case Left:
		return "Left"
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	default:
		return fmt.Sprintf("Face(%d)", uint8(f))
	}
}

// Opposite returns the face on the other side of the voxel.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Normal returns the unit offset pointing out of the face.
func (f Face) Normal() (dx, dy, dz int) {
	switch f {
	case Front:
		return 0, 0, 1
	case Back:
		return 0, 0, -1
	case Right:
		return 1, 0, 0
	case Left:
		return -1, 0, 0
	case Top:
		return 0, 1, 0
	case Bottom:
		return 0, -1, 0
	default:
		panic(fmt.Sprintf("tile: invalid face %d", uint8(f)))
	}
}
