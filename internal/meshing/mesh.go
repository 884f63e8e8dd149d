package meshing

import (
	"encoding/binary"
	"fmt"
	"math"

	"voxmesh/internal/atlas"
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Mesh is a triangle list with parallel per-vertex attributes. Vertices come
// in groups of four per quad and indices in groups of six per quad.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Colors    [][4]float32
	// Tiling is (tile origin u, v, repeat u, v) per vertex. The repeat
	// coordinates run 0..Width and 0..Height across a quad, so a renderer
	// sampling origin + fract(repeat)*TileExtent draws the tile once per
	// voxel face even on merged quads.
	Tiling     [][4]float32
	TileExtent float32
	Indices    []uint32
	// Kinds holds the source voxel kind of each quad.
	Kinds []voxel.Kind
}

// NumQuads is the number of quads in the mesh.
func (m *Mesh) NumQuads() int { return len(m.Kinds) }

// NumVertices is the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.Positions) }

// Fingerprint hashes every buffer in order. Equal meshes have equal fingerprints.
func (m *Mesh) Fingerprint() uint64 {
	d := xxhash.New()
	var b [4]byte
	f := func(v float32) {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		_, _ = d.Write(b[:])
	}
	for _, p := range m.Positions {
		f(p[0])
		f(p[1])
		f(p[2])
	}
	for _, n := range m.Normals {
		f(n[0])
		f(n[1])
		f(n[2])
	}
	for _, t := range m.TexCoords {
		f(t[0])
		f(t[1])
	}
	for _, c := range m.Colors {
		f(c[0])
		f(c[1])
		f(c[2])
		f(c[3])
	}
	for _, t := range m.Tiling {
		f(t[0])
		f(t[1])
		f(t[2])
		f(t[3])
	}
	f(m.TileExtent)
	for _, i := range m.Indices {
		binary.LittleEndian.PutUint32(b[:], i)
		_, _ = d.Write(b[:])
	}
	for _, k := range m.Kinds {
		_, _ = d.Write([]byte{byte(k)})
	}
	return d.Sum64()
}

// Options configure Build. The zero value is usable.
type Options struct {
	// Mesher defaults to VisibleFaces.
	Mesher    Mesher
	VoxelSize float32
	// Layout defaults to atlas.DefaultLayout.
	Layout atlas.Layout
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Mesher == nil {
		o.Mesher = VisibleFaces{}
	}
	if o.VoxelSize == 0 {
		o.VoxelSize = 1
	}
	if o.Layout == (atlas.Layout{}) {
		o.Layout = atlas.DefaultLayout()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// MesherByName returns "visible" or "greedy".
func MesherByName(name string) (Mesher, error) {
	switch name {
	case "", "visible":
		return VisibleFaces{}, nil
	case "greedy":
		return Greedy{}, nil
	default:
		return nil, fmt.Errorf("meshing: unknown algorithm %q", name)
	}
}

// Build meshes g with the given face set. Quads are assembled face by face in
// the mesher's emission order; each gets positions, normals, atlas UVs for
// the kind at its minimum corner, tiling coordinates, AO colours and six
// indices.
func Build(g *voxel.Grid, cfg FaceConfig, opts Options) (*Mesh, error) {
	defer profiling.Track("meshing.Build")()
	opts = opts.withDefaults()

	var buf QuadBuffer
	if err := opts.Mesher.Quads(g, cfg, &buf); err != nil {
		return nil, fmt.Errorf("%s quads: %w", opts.Mesher.Name(), err)
	}
	m := Assemble(g, cfg, &buf, opts)
	opts.Logger.Debug("mesh built",
		zap.String("mesher", opts.Mesher.Name()),
		zap.Int("quads", m.NumQuads()),
		zap.Int("vertices", m.NumVertices()),
		zap.Int("indices", len(m.Indices)),
	)
	return m, nil
}

// Assemble converts quads into vertex attributes.
func Assemble(g *voxel.Grid, cfg FaceConfig, buf *QuadBuffer, opts Options) *Mesh {
	opts = opts.withDefaults()
	numQuads := buf.NumQuads()
	m := &Mesh{
		Positions: make([][3]float32, 0, numQuads*4),
		Normals:   make([][3]float32, 0, numQuads*4),
		TexCoords: make([][2]float32, 0, numQuads*4),
		Colors:    make([][4]float32, 0, numQuads*4),
		Tiling:    make([][4]float32, 0, numQuads*4),
		Indices:   make([]uint32, 0, numQuads*6),
		Kinds:     make([]voxel.Kind, 0, numQuads),

		TileExtent: opts.Layout.TileSize / opts.Layout.AtlasSize,
	}

	unmapped := make(map[voxel.Kind]bool)
	for fi, f := range cfg.Faces {
		normals := f.Normals()
		for _, q := range buf.Groups[fi] {
			idx := f.Indices(uint32(len(m.Positions)))
			m.Indices = append(m.Indices, idx[:]...)
			pos := f.Positions(q, opts.VoxelSize)
			m.Positions = append(m.Positions, pos[:]...)
			m.Normals = append(m.Normals, normals[:]...)

			k := g.Get(int(q.Minimum[0]), int(q.Minimum[1]), int(q.Minimum[2]))
			uv, ok := opts.Layout.KindUV(k)
			if !ok && !unmapped[k] {
				unmapped[k] = true
				opts.Logger.Debug("kind has no atlas tile, using fallback", zap.Stringer("kind", k))
			}
			m.TexCoords = append(m.TexCoords, uv[:]...)
			for _, r := range f.TexCoords(cfg.UFlip, false, q) {
				m.Tiling = append(m.Tiling, [4]float32{uv[0][0], uv[0][1], r[0], r[1]})
			}

			for _, ao := range AmbientOcclusion(g, f, q) {
				m.Colors = append(m.Colors, AOColor(ao))
			}
			m.Kinds = append(m.Kinds, k)
		}
	}
	return m
}
