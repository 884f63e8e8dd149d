package voxel

import (
	"errors"
	"fmt"
)

var (
	ErrBorderNotEmpty = errors.New("voxel: grid border must be empty")
	ErrShapeMismatch  = errors.New("voxel: data length does not match shape")
	ErrShapeTooSmall  = errors.New("voxel: shape needs at least 3 voxels per axis")
)

// Shape is the extent of a grid along each axis.
type Shape struct {
	X, Y, Z uint32
}

// Cube returns a d×d×d shape.
func Cube(d uint32) Shape {
	return Shape{X: d, Y: d, Z: d}
}

// Size is the number of voxels in the shape.
func (s Shape) Size() int {
	return int(s.X) * int(s.Y) * int(s.Z)
}

// Linearize maps (x,y,z) to a flat index, x varying fastest.
func (s Shape) Linearize(x, y, z uint32) int {
	return int(x) + int(s.X)*(int(y)+int(s.Y)*int(z))
}

// Delinearize is the inverse of Linearize.
func (s Shape) Delinearize(i int) (x, y, z uint32) {
	xy := int(s.X) * int(s.Y)
	z = uint32(i / xy)
	rem := i % xy
	y = uint32(rem / int(s.X))
	x = uint32(rem % int(s.X))
	return x, y, z
}

// Contains reports whether the signed coordinate lies inside the shape.
func (s Shape) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < int(s.X) && y < int(s.Y) && z < int(s.Z)
}

// OnBorder reports whether the coordinate touches a face of the shape.
func (s Shape) OnBorder(x, y, z uint32) bool {
	return x == 0 || y == 0 || z == 0 ||
		x == s.X-1 || y == s.Y-1 || z == s.Z-1
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.X, s.Y, s.Z)
}

// Grid is a dense 3D array of voxel kinds.
type Grid struct {
	shape  Shape
	voxels []Kind
}

// NewGrid returns an all-empty grid.
func NewGrid(shape Shape) (*Grid, error) {
	if shape.X < 3 || shape.Y < 3 || shape.Z < 3 {
		return nil, fmt.Errorf("%w: got %s", ErrShapeTooSmall, shape)
	}
	return &Grid{shape: shape, voxels: make([]Kind, shape.Size())}, nil
}

// FromSlice wraps existing data. The slice is not copied.
func FromSlice(shape Shape, voxels []Kind) (*Grid, error) {
	if shape.X < 3 || shape.Y < 3 || shape.Z < 3 {
		return nil, fmt.Errorf("%w: got %s", ErrShapeTooSmall, shape)
	}
	if len(voxels) != shape.Size() {
		return nil, fmt.Errorf("%w: %d voxels for %s", ErrShapeMismatch, len(voxels), shape)
	}
	return &Grid{shape: shape, voxels: voxels}, nil
}

func (g *Grid) Shape() Shape { return g.shape }

// Voxels exposes the backing slice in linear order.
func (g *Grid) Voxels() []Kind { return g.voxels }

// Get returns the kind at (x,y,z); out of range reads are Empty.
func (g *Grid) Get(x, y, z int) Kind {
	if !g.shape.Contains(x, y, z) {
		return Empty
	}
	return g.voxels[g.shape.Linearize(uint32(x), uint32(y), uint32(z))]
}

// Set writes k at (x,y,z). Out of range writes are ignored.
func (g *Grid) Set(x, y, z int, k Kind) {
	if !g.shape.Contains(x, y, z) {
		return
	}
	g.voxels[g.shape.Linearize(uint32(x), uint32(y), uint32(z))] = k
}

// Count returns the number of non-empty voxels.
func (g *Grid) Count() int {
	n := 0
	for _, k := range g.voxels {
		if k != Empty {
			n++
		}
	}
	return n
}

// ValidateBorder checks that every voxel on the outer shell is Empty, so
// every face of a solid voxel has an in-bounds neighbour.
func (g *Grid) ValidateBorder() error {
	for i, k := range g.voxels {
		if k == Empty {
			continue
		}
		x, y, z := g.shape.Delinearize(i)
		if g.shape.OnBorder(x, y, z) {
			return fmt.Errorf("%w: %s at (%d,%d,%d)", ErrBorderNotEmpty, k, x, y, z)
		}
	}
	return nil
}

// ValidateKinds returns an error naming the first voxel outside the defined set.
func (g *Grid) ValidateKinds() error {
	for i, k := range g.voxels {
		if !k.Valid() {
			x, y, z := g.shape.Delinearize(i)
			return fmt.Errorf("voxel: undefined %s at (%d,%d,%d)", k, x, y, z)
		}
	}
	return nil
}
