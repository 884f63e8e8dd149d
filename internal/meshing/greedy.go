package meshing

import "voxmesh/internal/voxel"

// maskCell is one candidate face: the voxel that owns it and the voxel it
// faces. self is Empty when no face is drawn there.
type maskCell struct {
	self, neighbour voxel.Kind
}

// mergesWith reports whether two faces may share a quad: same merge value
// on the owning side and same look from the neighbouring side.
func (c maskCell) mergesWith(o maskCell) bool {
	return o.self != voxel.Empty &&
		c.self.MergeValue() == o.self.MergeValue() &&
		c.neighbour.MergeValueFacingNeighbour() == o.neighbour.MergeValueFacingNeighbour()
}

// Greedy merges coplanar visible faces of the same merge value into larger
// rectangles. It produces fewer quads than VisibleFaces but a merged quad
// no longer maps to a single voxel.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

// Quads performs 2D greedy merging for each face, one layer at a time along
// the face normal.
func (Greedy) Quads(g *voxel.Grid, cfg FaceConfig, buf *QuadBuffer) error {
	if err := checkInput(g, cfg); err != nil {
		return err
	}
	buf.Reset()
	s := g.Shape()
	dims := [3]uint32{s.X, s.Y, s.Z}

	for fi, f := range cfg.Faces {
		axes := f.Permutation().Axes()
		na, ua, va := axes[0], axes[1], axes[2]
		n := f.Normal()

		// interior only; the shell is empty by contract
		nu := int(dims[ua]) - 2
		nv := int(dims[va]) - 2
		mask := make([]maskCell, nu*nv)

		for d := uint32(1); d < dims[na]-1; d++ {
			// Build mask: the visible face at (u,v), zero when none
			for v := 0; v < nv; v++ {
				for u := 0; u < nu; u++ {
					var p [3]int
					p[na] = int(d)
					p[ua] = u + 1
					p[va] = v + 1
					k := g.Get(p[0], p[1], p[2])
					nb := g.Get(p[0]+n[0], p[1]+n[1], p[2]+n[2])
					mask[v*nu+u] = maskCell{}
					if faceNeedsMesh(k, nb) {
						mask[v*nu+u] = maskCell{self: k, neighbour: nb}
					}
				}
			}

			// Greedy merge over mask
			i := 0
			for i < nu*nv {
				c := mask[i]
				if c.self == voxel.Empty {
					i++
					continue
				}
				u0 := i % nu
				v0 := i / nu

				width := 1
				for u1 := u0 + 1; u1 < nu && c.mergesWith(mask[v0*nu+u1]); u1++ {
					width++
				}
				height := 1
			outer:
				for v1 := v0 + 1; v1 < nv; v1++ {
					for u1 := u0; u1 < u0+width; u1++ {
						if !c.mergesWith(mask[v1*nu+u1]) {
							break outer
						}
					}
					height++
				}

				var minimum [3]uint32
				minimum[na] = d
				minimum[ua] = uint32(u0 + 1)
				minimum[va] = uint32(v0 + 1)
				buf.Groups[fi] = append(buf.Groups[fi], Quad{
					Minimum: minimum,
					Width:   uint32(width),
					Height:  uint32(height),
				})

				// zero-out mask region
				for vv := v0; vv < v0+height; vv++ {
					for uu := u0; uu < u0+width; uu++ {
						mask[vv*nu+uu] = maskCell{}
					}
				}
				i += width
			}
		}
	}
	return nil
}
