package export

import (
	"bytes"
	"image"
	"math"
	"path/filepath"
	"testing"

	"voxmesh/internal/meshing"
	"voxmesh/internal/scene"
	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

func demoScene(t *testing.T) *scene.Scene {
	t.Helper()
	g, _ := voxel.NewGrid(voxel.Cube(3))
	g.Set(1, 1, 1, voxel.A1)
	m, err := meshing.Build(g, meshing.RightHandedYUp, meshing.Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := scene.New()
	tex := s.AddTexture(scene.Texture{Path: "uv.png"})
	mesh := s.AddMesh(m)
	white := mgl32.Vec4{1, 1, 1, 1}
	mask := s.AddMaterial(scene.Material{Texture: tex, Blend: scene.BlendMask, AlphaCutoff: 1, BaseColor: white, Roughness: 1})
	blend := s.AddMaterial(scene.Material{Texture: tex, Blend: scene.BlendAlpha, BaseColor: white, Roughness: 1})
	for _, mat := range []scene.MaterialHandle{mask, blend} {
		if _, err := s.AddObject(scene.Object{Mesh: mesh, Material: mat, Transform: scene.Translate(mgl32.Vec3{-10, -10, -10})}); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func images(string) (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

func TestWriteGLBRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGLB(&buf, demoScene(t), images); err != nil {
		t.Fatal(err)
	}

	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 2 || len(doc.Meshes) != 2 {
		t.Fatalf("nodes/meshes: got %d/%d, want 2/2", len(doc.Nodes), len(doc.Meshes))
	}
	if len(doc.Materials) != 2 {
		t.Fatalf("materials: got %d, want 2", len(doc.Materials))
	}
	if doc.Materials[0].AlphaMode != gltf.AlphaMask || doc.Materials[1].AlphaMode != gltf.AlphaBlend {
		t.Fatalf("alpha modes: got %v, %v", doc.Materials[0].AlphaMode, doc.Materials[1].AlphaMode)
	}
	if len(doc.Images) != 1 || len(doc.Textures) != 1 {
		t.Fatalf("images/textures: got %d/%d, want 1/1", len(doc.Images), len(doc.Textures))
	}

	prim := doc.Meshes[0].Primitives[0]
	if got := doc.Accessors[prim.Attributes[gltf.POSITION]].Count; got != 24 {
		t.Fatalf("positions: got %d, want 24", got)
	}
	if got := doc.Accessors[prim.Attributes[gltf.COLOR_0]].Count; got != 24 {
		t.Fatalf("colors: got %d, want 24", got)
	}
	if got := doc.Accessors[*prim.Indices].Count; got != 36 {
		t.Fatalf("indices: got %d, want 36", got)
	}
	// both objects share one set of vertex accessors
	if doc.Meshes[1].Primitives[0].Attributes[gltf.POSITION] != prim.Attributes[gltf.POSITION] {
		t.Fatal("second object re-wrote vertex data")
	}
	if doc.Nodes[0].Translation != [3]float64{-10, -10, -10} {
		t.Fatalf("translation: got %v", doc.Nodes[0].Translation)
	}
	if got := *doc.Materials[0].AlphaCutoff; got != 1 {
		t.Fatalf("alpha cutoff: got %v, want 1", got)
	}
}

func TestNodeKeepsRotationAndScale(t *testing.T) {
	s := demoScene(t)
	doc, err := Document(s, images)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Nodes[0].Rotation != [4]float64{0, 0, 0, 1} || doc.Nodes[0].Scale != [3]float64{1, 1, 1} {
		t.Fatalf("rotation/scale: got %v %v, want identity", doc.Nodes[0].Rotation, doc.Nodes[0].Scale)
	}

	var first scene.ObjectHandle
	s.Objects(func(h scene.ObjectHandle, _ scene.Object) {
		if first == 0 {
			first = h
		}
	})
	tr := scene.Transform{
		Translation: mgl32.Vec3{1, 2, 3},
		Rotation:    mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		Scale:       2,
	}
	if err := s.SetTransform(first, tr); err != nil {
		t.Fatal(err)
	}
	doc, err = Document(s, images)
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Nodes[0]
	if n.Translation != [3]float64{1, 2, 3} {
		t.Fatalf("translation: got %v", n.Translation)
	}
	if n.Scale != [3]float64{2, 2, 2} {
		t.Fatalf("scale: got %v, want 2s", n.Scale)
	}
	half := math.Sqrt2 / 2
	want := [4]float64{0, half, 0, half}
	for i := range want {
		if math.Abs(n.Rotation[i]-want[i]) > 1e-5 {
			t.Fatalf("rotation: got %v, want %v", n.Rotation, want)
		}
	}
}

func TestSaveGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxels.glb")
	if err := SaveGLB(path, demoScene(t), images); err != nil {
		t.Fatal(err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Scenes[0].Nodes) != 2 {
		t.Fatalf("scene nodes: got %d, want 2", len(doc.Scenes[0].Nodes))
	}
}

func TestEmptyMeshExportsNodeOnly(t *testing.T) {
	s := scene.New()
	mesh := s.AddMesh(&meshing.Mesh{})
	mat := s.AddMaterial(scene.Material{})
	if _, err := s.AddObject(scene.Object{Mesh: mesh, Material: mat}); err != nil {
		t.Fatal(err)
	}
	doc, err := Document(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 1 || len(doc.Meshes) != 0 || doc.Nodes[0].Mesh != nil {
		t.Fatalf("got %d nodes, %d meshes", len(doc.Nodes), len(doc.Meshes))
	}
}
