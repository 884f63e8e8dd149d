package scene

import (
	"errors"
	"testing"

	"voxmesh/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestHandlesStartAtOne(t *testing.T) {
	s := New()
	if h := s.AddMesh(&meshing.Mesh{}); h != 1 {
		t.Fatalf("first mesh handle: got %d, want 1", h)
	}
	if _, err := s.Mesh(0); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("handle 0: got %v, want ErrInvalidHandle", err)
	}
	if _, err := s.Mesh(9); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("handle 9: got %v, want ErrInvalidHandle", err)
	}
}

func TestObjectLifecycle(t *testing.T) {
	s := New()
	tex := s.AddTexture(Texture{Path: "uv.png"})
	mesh := s.AddMesh(&meshing.Mesh{})
	mat := s.AddMaterial(Material{Texture: tex, Blend: BlendAlpha})

	if _, err := s.AddObject(Object{Mesh: mesh, Material: 42}); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("dangling material: got %v", err)
	}

	obj, err := s.AddObject(Object{Mesh: mesh, Material: mat, Transform: Translate(mgl32.Vec3{-10, -10, -10})})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetTransform(obj, Translate(mgl32.Vec3{1, 2, 3})); err != nil {
		t.Fatal(err)
	}
	o, err := s.Object(obj)
	if err != nil {
		t.Fatal(err)
	}
	if o.Transform.Translation != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("translation: got %v", o.Transform.Translation)
	}

	if err := s.RemoveObject(obj); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Object(obj); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("removed object: got %v", err)
	}
	if err := s.RemoveObject(obj); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("double remove: got %v", err)
	}
	if s.NumObjects() != 0 {
		t.Fatalf("objects: got %d, want 0", s.NumObjects())
	}
}

func TestObjectsIterateInHandleOrder(t *testing.T) {
	s := New()
	mesh := s.AddMesh(&meshing.Mesh{})
	mat := s.AddMaterial(Material{})
	var want []ObjectHandle
	for i := 0; i < 3; i++ {
		h, err := s.AddObject(Object{Mesh: mesh, Material: mat})
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, h)
	}
	_ = s.RemoveObject(want[1])
	var got []ObjectHandle
	s.Objects(func(h ObjectHandle, _ Object) { got = append(got, h) })
	if len(got) != 2 || got[0] != want[0] || got[1] != want[2] {
		t.Fatalf("got %v, want [%d %d]", got, want[0], want[2])
	}
}

func TestTransformMatrix(t *testing.T) {
	m := Translate(mgl32.Vec3{-10, -10, -10}).Matrix()
	p := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	if !p.Vec3().ApproxEqual(mgl32.Vec3{-9, -9, -9}) {
		t.Fatalf("got %v", p)
	}
	// zero value behaves as identity
	if !(Transform{}).Matrix().ApproxEqual(mgl32.Ident4()) {
		t.Fatal("zero transform is not identity")
	}
}
