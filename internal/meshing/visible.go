package meshing

import "voxmesh/internal/voxel"

// VisibleFaces emits one unit quad per voxel face that borders an empty
// voxel. No coplanar merging, so each quad maps back to exactly one voxel.
type VisibleFaces struct{}

func (VisibleFaces) Name() string { return "visible" }

// Quads walks the interior in linear order (x fastest) and fills buf, one
// group per face.
func (VisibleFaces) Quads(g *voxel.Grid, cfg FaceConfig, buf *QuadBuffer) error {
	if err := checkInput(g, cfg); err != nil {
		return err
	}
	buf.Reset()
	s := g.Shape()
	for z := uint32(1); z < s.Z-1; z++ {
		for y := uint32(1); y < s.Y-1; y++ {
			for x := uint32(1); x < s.X-1; x++ {
				k := g.Get(int(x), int(y), int(z))
				if k.Visibility() == voxel.VisibilityEmpty {
					continue
				}
				for fi, f := range cfg.Faces {
					n := f.Normal()
					nb := g.Get(int(x)+n[0], int(y)+n[1], int(z)+n[2])
					if faceNeedsMesh(k, nb) {
						buf.Groups[fi] = append(buf.Groups[fi], UnitQuad(x, y, z))
					}
				}
			}
		}
	}
	return nil
}
