package meshing

import "github.com/go-gl/mathgl/mgl32"

// Axis is one of the three grid axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) unit() [3]int {
	var v [3]int
	v[a] = 1
	return v
}

// AxisPermutation orders the axes as (normal, u, v).
type AxisPermutation uint8

const (
	Xyz AxisPermutation = iota
	Zxy
	Yzx
	Zyx
	Xzy
	Yxz
)

// Axes returns (normal, u, v).
func (p AxisPermutation) Axes() [3]Axis {
	switch p {
	case Xyz:
		return [3]Axis{AxisX, AxisY, AxisZ}
	case Zxy:
		return [3]Axis{AxisZ, AxisX, AxisY}
	case Yzx:
		return [3]Axis{AxisY, AxisZ, AxisX}
	case Zyx:
		return [3]Axis{AxisZ, AxisY, AxisX}
	case Xzy:
		return [3]Axis{AxisX, AxisZ, AxisY}
	default:
		return [3]Axis{AxisY, AxisX, AxisZ}
	}
}

// Sign is +1 for even permutations of xyz and -1 for odd ones.
func (p AxisPermutation) Sign() int {
	switch p {
	case Xyz, Zxy, Yzx:
		return 1
	default:
		return -1
	}
}

// OrientedFace is one of the six axis-aligned face directions together with
// the tangent basis used to lay out quad corners on it.
type OrientedFace struct {
	sign        int
	permutation AxisPermutation
	n, u, v     [3]int
}

// NewOrientedFace builds the face whose normal points along sign * normal axis of p.
func NewOrientedFace(sign int, p AxisPermutation) OrientedFace {
	axes := p.Axes()
	n := axes[0].unit()
	for i := range n {
		n[i] *= sign
	}
	return OrientedFace{
		sign:        sign,
		permutation: p,
		n:           n,
		u:           axes[1].unit(),
		v:           axes[2].unit(),
	}
}

func (f OrientedFace) Sign() int                    { return f.sign }
func (f OrientedFace) Permutation() AxisPermutation { return f.permutation }

// Normal is the integer outward normal.
func (f OrientedFace) Normal() [3]int { return f.n }

// U and V are the in-plane tangent directions.
func (f OrientedFace) U() [3]int { return f.u }
func (f OrientedFace) V() [3]int { return f.v }

// NormalAxis is the axis the face is perpendicular to.
func (f OrientedFace) NormalAxis() Axis { return f.permutation.Axes()[0] }

// Corners returns quad corners in (minu,minv) (maxu,minv) (minu,maxv)
// (maxu,maxv) order. Faces with positive sign sit one unit along the normal.
func (f OrientedFace) Corners(q Quad) [4][3]int {
	var base [3]int
	for i := range base {
		base[i] = int(q.Minimum[i])
		if f.sign > 0 {
			base[i] += f.n[i]
		}
	}
	w, h := int(q.Width), int(q.Height)
	var out [4][3]int
	for i := range base {
		out[0][i] = base[i]
		out[1][i] = base[i] + f.u[i]*w
		out[2][i] = base[i] + f.v[i]*h
		out[3][i] = base[i] + f.u[i]*w + f.v[i]*h
	}
	return out
}

// Positions scales the corners by voxelSize.
func (f OrientedFace) Positions(q Quad, voxelSize float32) [4][3]float32 {
	var out [4][3]float32
	for i, c := range f.Corners(q) {
		p := mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}.Mul(voxelSize)
		out[i] = [3]float32(p)
	}
	return out
}

// Normals is the face normal repeated for each corner.
func (f OrientedFace) Normals() [4][3]float32 {
	n := [3]float32{float32(f.n[0]), float32(f.n[1]), float32(f.n[2])}
	return [4][3]float32{n, n, n, n}
}

// Indices returns the two triangles of a quad whose first vertex is start,
// wound counter-clockwise when seen from outside.
func (f OrientedFace) Indices(start uint32) [6]uint32 {
	if f.sign*f.permutation.Sign() > 0 {
		return [6]uint32{start, start + 1, start + 2, start + 1, start + 3, start + 2}
	}
	return [6]uint32{start, start + 2, start + 1, start + 1, start + 2, start + 3}
}

// TexCoords returns per-corner UVs spanning the quad in voxel units. uFlip
// names the axis whose faces mirror u; flipV mirrors v.
func (f OrientedFace) TexCoords(uFlip Axis, flipV bool, q Quad) [4][2]float32 {
	w, h := float32(q.Width), float32(q.Height)
	var flipU bool
	if f.sign < 0 {
		flipU = uFlip != f.NormalAxis()
	} else {
		flipU = uFlip == f.NormalAxis()
	}
	switch {
	case !flipU && !flipV:
		return [4][2]float32{{0, 0}, {w, 0}, {0, h}, {w, h}}
	case flipU && !flipV:
		return [4][2]float32{{w, 0}, {0, 0}, {w, h}, {0, h}}
	case !flipU && flipV:
		return [4][2]float32{{0, h}, {w, h}, {0, 0}, {w, 0}}
	default:
		return [4][2]float32{{w, h}, {0, h}, {w, 0}, {0, 0}}
	}
}

// FaceConfig is a complete set of six faces plus the u-flip convention.
type FaceConfig struct {
	Faces [6]OrientedFace
	UFlip Axis
}

// RightHandedYUp keeps Y on the v axis for every side face; top and bottom
// use Yzx to stay right-handed.
var RightHandedYUp = FaceConfig{
	Faces: [6]OrientedFace{
		NewOrientedFace(-1, Xzy),
		NewOrientedFace(-1, Yzx),
		NewOrientedFace(-1, Zxy),
		NewOrientedFace(1, Xzy),
		NewOrientedFace(1, Yzx),
		NewOrientedFace(1, Zxy),
	},
	UFlip: AxisX,
}

// validate checks the six faces cover each signed axis exactly once.
func (c FaceConfig) validate() error {
	var seen [3][2]bool
	for _, f := range c.Faces {
		if f.sign != 1 && f.sign != -1 {
			return ErrFaceSet
		}
		s := 0
		if f.sign > 0 {
			s = 1
		}
		a := f.NormalAxis()
		if seen[a][s] {
			return ErrFaceSet
		}
		seen[a][s] = true
	}
	return nil
}
