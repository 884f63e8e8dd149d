package meshing

import "voxmesh/internal/voxel"

// cornerSigns matches the corner order of OrientedFace.Corners.
var cornerSigns = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// AmbientOcclusion samples the three voxels in front of each quad corner
// (two sides and the diagonal) and returns 3 for a fully open corner down
// to 0 when both sides are solid.
func AmbientOcclusion(g *voxel.Grid, f OrientedFace, q Quad) [4]uint8 {
	n, u, v := f.Normal(), f.U(), f.V()
	occ := func(p [3]int) int {
		if g.Get(p[0], p[1], p[2]).Visibility() == voxel.VisibilityEmpty {
			return 0
		}
		return 1
	}

	var out [4]uint8
	for i, sg := range cornerSigns {
		// voxel owning this corner; differs from Minimum on merged quads
		var base [3]int
		for a := range base {
			base[a] = int(q.Minimum[a]) + n[a]
			if sg[0] > 0 {
				base[a] += u[a] * (int(q.Width) - 1)
			}
			if sg[1] > 0 {
				base[a] += v[a] * (int(q.Height) - 1)
			}
		}
		var s1, s2, c [3]int
		for a := range base {
			s1[a] = base[a] + sg[0]*u[a]
			s2[a] = base[a] + sg[1]*v[a]
			c[a] = base[a] + sg[0]*u[a] + sg[1]*v[a]
		}
		side1, side2, corner := occ(s1), occ(s2), occ(c)
		if side1 == 1 && side2 == 1 {
			out[i] = 0
			continue
		}
		out[i] = uint8(3 - (side1 + side2 + corner))
	}
	return out
}

// AO swatches, darkest first.
var aoPalette = [4][4]float32{
	{0.1, 0.1, 0.1, 1.0},
	{0.3, 0.3, 0.3, 1.0},
	{0.5, 0.5, 0.5, 1.0},
	{0.75, 0.75, 0.75, 1.0},
}

// AOColor maps an occlusion sample to its grey swatch; anything outside 0..3 is white.
func AOColor(ao uint8) [4]float32 {
	if int(ao) < len(aoPalette) {
		return aoPalette[ao]
	}
	return [4]float32{1, 1, 1, 1}
}
