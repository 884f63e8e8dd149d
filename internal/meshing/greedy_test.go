package meshing

import (
	"testing"

	"voxmesh/internal/voxel"
)

func pairGrid(t *testing.T, a, b voxel.Kind) *voxel.Grid {
	t.Helper()
	g, err := voxel.NewGrid(voxel.Shape{X: 4, Y: 3, Z: 3})
	if err != nil {
		t.Fatal(err)
	}
	g.Set(1, 1, 1, a)
	g.Set(2, 1, 1, b)
	return g
}

func TestTwoBlocksTouching(t *testing.T) {
	g := pairGrid(t, voxel.A2, voxel.A2)
	var visible, greedy QuadBuffer
	if err := (VisibleFaces{}).Quads(g, RightHandedYUp, &visible); err != nil {
		t.Fatal(err)
	}
	if err := (Greedy{}).Quads(g, RightHandedYUp, &greedy); err != nil {
		t.Fatal(err)
	}
	// shared face is hidden either way
	if visible.NumQuads() != 10 {
		t.Fatalf("visible: got %d quads, want 10", visible.NumQuads())
	}
	// union is a 2x1x1 cuboid
	if greedy.NumQuads() != 6 {
		t.Fatalf("greedy: got %d quads, want 6", greedy.NumQuads())
	}
}

func TestGreedyKeepsKindsApart(t *testing.T) {
	g := pairGrid(t, voxel.A1, voxel.A2)
	var buf QuadBuffer
	if err := (Greedy{}).Quads(g, RightHandedYUp, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.NumQuads() != 10 {
		t.Fatalf("greedy across kinds: got %d quads, want 10", buf.NumQuads())
	}
}

func TestGreedyCoversSameArea(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		g := randomGrid(t, 16, seed)
		var visible, greedy QuadBuffer
		if err := (VisibleFaces{}).Quads(g, RightHandedYUp, &visible); err != nil {
			t.Fatal(err)
		}
		if err := (Greedy{}).Quads(g, RightHandedYUp, &greedy); err != nil {
			t.Fatal(err)
		}
		if greedy.NumQuads() > visible.NumQuads() {
			t.Fatalf("seed %d: greedy %d quads > visible %d", seed, greedy.NumQuads(), visible.NumQuads())
		}
		for fi := range RightHandedYUp.Faces {
			area := 0
			for _, q := range greedy.Groups[fi] {
				area += q.Area()
				// merged quads hold one kind
				k := g.Get(int(q.Minimum[0]), int(q.Minimum[1]), int(q.Minimum[2]))
				if k == voxel.Empty {
					t.Fatalf("seed %d face %d: quad at empty voxel %v", seed, fi, q.Minimum)
				}
			}
			if area != len(visible.Groups[fi]) {
				t.Fatalf("seed %d face %d: greedy area %d, visible faces %d", seed, fi, area, len(visible.Groups[fi]))
			}
		}
	}
}

func TestGreedySolidCube(t *testing.T) {
	g, _ := voxel.NewGrid(voxel.Cube(6))
	g.FillInterior(voxel.A2)
	m, err := Build(g, RightHandedYUp, Options{Mesher: Greedy{}})
	if err != nil {
		t.Fatal(err)
	}
	if m.NumQuads() != 6 {
		t.Fatalf("solid 4x4x4: got %d quads, want 6", m.NumQuads())
	}
	for _, p := range m.Positions {
		for a := 0; a < 3; a++ {
			if p[a] != 1 && p[a] != 5 {
				t.Fatalf("corner %v not on the 1..5 cube", p)
			}
		}
	}
}

func TestGreedyMergeKey(t *testing.T) {
	a := maskCell{self: voxel.A2, neighbour: voxel.Empty}
	if !a.mergesWith(maskCell{self: voxel.A2, neighbour: voxel.Empty}) {
		t.Fatal("equal faces not merged")
	}
	if a.mergesWith(maskCell{self: voxel.A1, neighbour: voxel.Empty}) {
		t.Fatal("different owners merged")
	}
	// same owner, but the faces look different from the neighbouring side
	if a.mergesWith(maskCell{self: voxel.A2, neighbour: voxel.A1}) {
		t.Fatal("different neighbours merged")
	}
	if a.mergesWith(maskCell{}) {
		t.Fatal("merged into an empty cell")
	}
}

func TestQuadsResetBuffer(t *testing.T) {
	g := randomGrid(t, 8, 3)
	for _, m := range []Mesher{VisibleFaces{}, Greedy{}} {
		var buf QuadBuffer
		if err := m.Quads(g, RightHandedYUp, &buf); err != nil {
			t.Fatal(err)
		}
		first := buf.NumQuads()
		if err := m.Quads(g, RightHandedYUp, &buf); err != nil {
			t.Fatal(err)
		}
		if buf.NumQuads() != first {
			t.Fatalf("%s: reused buffer holds %d quads, want %d", m.Name(), buf.NumQuads(), first)
		}
	}
}

func TestGreedyTilesRepeatPerFace(t *testing.T) {
	g, _ := voxel.NewGrid(voxel.Cube(6))
	g.FillInterior(voxel.A2)
	m, err := Build(g, RightHandedYUp, Options{Mesher: Greedy{}})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Tiling) != m.NumVertices() {
		t.Fatalf("tiling: got %d, want %d", len(m.Tiling), m.NumVertices())
	}
	if m.TileExtent != 1.0/16 {
		t.Fatalf("tile extent: got %v, want 1/16", m.TileExtent)
	}
	for i, tl := range m.Tiling {
		// A2 sits on tile 16: origin 15/16
		if tl[0] != 15.0/16 || tl[1] != 15.0/16 {
			t.Fatalf("vertex %d: tile origin %v, want 15/16", i, tl)
		}
		if (tl[2] != 0 && tl[2] != 4) || (tl[3] != 0 && tl[3] != 4) {
			t.Fatalf("vertex %d: repeat %v, want 0 or 4", i, tl)
		}
	}
	// one quad per face in face order; +X mirrors u
	plusX := m.Tiling[3*4 : 3*4+4]
	if plusX[0][2] != 4 || plusX[0][3] != 0 || plusX[3][2] != 0 || plusX[3][3] != 4 {
		t.Fatalf("+x repeat: got %v", plusX)
	}
	minusX := m.Tiling[0:4]
	if minusX[0][2] != 0 || minusX[3][2] != 4 {
		t.Fatalf("-x repeat: got %v", minusX)
	}
}

func TestVisibleTilesAreUnit(t *testing.T) {
	m, err := Build(randomGrid(t, 8, 5), RightHandedYUp, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for q := 0; q < m.NumQuads(); q++ {
		for c := 0; c < 4; c++ {
			tl := m.Tiling[q*4+c]
			if tl[2] < 0 || tl[2] > 1 || tl[3] < 0 || tl[3] > 1 {
				t.Fatalf("quad %d: repeat %v outside one tile", q, tl)
			}
			// the tile origin is the lo corner of the quad's atlas UVs
			if tl[0] != m.TexCoords[q*4][0] || tl[1] != m.TexCoords[q*4][1] {
				t.Fatalf("quad %d: origin %v, uv %v", q, tl, m.TexCoords[q*4])
			}
		}
	}
}

func BenchmarkBuildGreedy(b *testing.B) {
	g := randomGrid(b, 22, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Build(g, RightHandedYUp, Options{Mesher: Greedy{}})
	}
}
