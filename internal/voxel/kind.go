package voxel

import "fmt"

// Kind is a single-byte voxel type code.
type Kind uint8

const (
	Empty Kind = iota
	A1
	A2
)

// kinds is the closed set the generator draws from and the atlas maps.
var kinds = [...]Kind{Empty, A1, A2}

// Kinds returns every defined kind, Empty first.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds[:])
	return out
}

// Valid reports whether k belongs to the defined set.
func (k Kind) Valid() bool {
	return int(k) < len(kinds)
}

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case A1:
		return "a1"
	case A2:
		return "a2"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Visibility controls whether a voxel produces faces and which merge class they fall into.
type Visibility uint8

const (
	VisibilityEmpty Visibility = iota
	VisibilityTranslucent
	VisibilityOpaque
)

func (v Visibility) String() string {
	switch v {
	case VisibilityEmpty:
		return "empty"
	case VisibilityTranslucent:
		return "translucent"
	default:
		return "opaque"
	}
}

// Visibility classifies the kind. Unknown codes are opaque.
func (k Kind) Visibility() Visibility {
	switch k {
	case Empty:
		return VisibilityEmpty
	case A1:
		return VisibilityTranslucent
	default:
		return VisibilityOpaque
	}
}

// MergeValue is the key two coplanar faces must share to be merged.
func (k Kind) MergeValue() uint8 {
	return uint8(k)
}

// MergeValueFacingNeighbour keys faces by what they look like from the
// neighbouring (empty) side.
func (k Kind) MergeValueFacingNeighbour() uint8 {
	return uint8(k) * 2
}
