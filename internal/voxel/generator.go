package voxel

import "math/rand"

// Generate fills the interior of a new grid with kinds drawn uniformly from
// Kinds(). The one-voxel shell is left empty.
func Generate(shape Shape, rng *rand.Rand) (*Grid, error) {
	g, err := NewGrid(shape)
	if err != nil {
		return nil, err
	}
	set := Kinds()
	for z := uint32(1); z < shape.Z-1; z++ {
		for y := uint32(1); y < shape.Y-1; y++ {
			for x := uint32(1); x < shape.X-1; x++ {
				g.voxels[shape.Linearize(x, y, z)] = set[rng.Intn(len(set))]
			}
		}
	}
	return g, nil
}

// FillInterior sets every interior voxel to k.
func (g *Grid) FillInterior(k Kind) {
	s := g.shape
	for z := uint32(1); z < s.Z-1; z++ {
		for y := uint32(1); y < s.Y-1; y++ {
			for x := uint32(1); x < s.X-1; x++ {
				g.voxels[s.Linearize(x, y, z)] = k
			}
		}
	}
}
