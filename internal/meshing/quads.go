package meshing

import (
	"errors"

	"voxmesh/internal/voxel"
)

var ErrFaceSet = errors.New("meshing: face set must hold the six signed axes once each")

// Quad is an axis-aligned rectangle on one face of the voxel at Minimum.
// Width runs along the face's u axis and Height along v.
type Quad struct {
	Minimum [3]uint32
	Width   uint32
	Height  uint32
}

// UnitQuad covers exactly one voxel face.
func UnitQuad(x, y, z uint32) Quad {
	return Quad{Minimum: [3]uint32{x, y, z}, Width: 1, Height: 1}
}

// Area is the number of voxel faces the quad covers.
func (q Quad) Area() int { return int(q.Width) * int(q.Height) }

// QuadBuffer holds quads grouped by face, indexed like FaceConfig.Faces.
type QuadBuffer struct {
	Groups [6][]Quad
}

// NumQuads counts quads over all groups.
func (b *QuadBuffer) NumQuads() int {
	n := 0
	for _, g := range b.Groups {
		n += len(g)
	}
	return n
}

// Reset empties the buffer and keeps its capacity.
func (b *QuadBuffer) Reset() {
	for i := range b.Groups {
		b.Groups[i] = b.Groups[i][:0]
	}
}

// Mesher turns a grid into face quads. Implementations must be pure and
// emit quads in a stable order. Quads resets buf first, so one buffer can be
// reused across calls.
type Mesher interface {
	Name() string
	Quads(g *voxel.Grid, cfg FaceConfig, buf *QuadBuffer) error
}

// faceNeedsMesh reports whether a face of self should be drawn against neighbour.
func faceNeedsMesh(self, neighbour voxel.Kind) bool {
	return self.Visibility() != voxel.VisibilityEmpty &&
		neighbour.Visibility() == voxel.VisibilityEmpty
}

func checkInput(g *voxel.Grid, cfg FaceConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	return g.ValidateBorder()
}
