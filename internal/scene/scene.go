// Package scene owns everything the renderer draws. Objects refer to each
// other through small integer handles into per-type tables; handle 0 is
// never valid.
package scene

import (
	"errors"
	"fmt"

	"voxmesh/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidHandle = errors.New("scene: invalid handle")

type (
	MeshHandle     uint32
	MaterialHandle uint32
	TextureHandle  uint32
	ObjectHandle   uint32
)

// BlendMode selects how a material's alpha is used.
type BlendMode uint8

const (
	// BlendMask discards fragments below the cutoff and writes depth.
	BlendMask BlendMode = iota
	// BlendAlpha blends with what is behind and skips depth writes.
	BlendAlpha
)

func (b BlendMode) String() string {
	if b == BlendAlpha {
		return "blend"
	}
	return "mask"
}

// Material is a texture plus how to composite it.
type Material struct {
	Texture     TextureHandle
	Blend       BlendMode
	AlphaCutoff float32
	BaseColor   mgl32.Vec4
	Roughness   float32
}

// Transform is a translation, rotation and uniform scale.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       float32
}

// Translate returns an unrotated, unscaled transform.
func Translate(v mgl32.Vec3) Transform {
	return Transform{Translation: v, Rotation: mgl32.QuatIdent(), Scale: 1}
}

// Matrix composes T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	r := t.Rotation
	if r == (mgl32.Quat{}) {
		r = mgl32.QuatIdent()
	}
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(r.Mat4()).
		Mul4(mgl32.Scale3D(s, s, s))
}

// Object draws one mesh with one material.
type Object struct {
	Mesh      MeshHandle
	Material  MaterialHandle
	Transform Transform
}

// PointLight is an omnidirectional light.
type PointLight struct {
	Position  mgl32.Vec3
	Range     float32
	Intensity float32
	Shadows   bool
}

// Texture is an image known to the scene by its asset path.
type Texture struct {
	Path string
}

// Scene is a set of arenas. The zero value is not usable; call New.
type Scene struct {
	meshes    table[*meshing.Mesh]
	materials table[Material]
	textures  table[Texture]
	objects   table[Object]

	Lights []PointLight
	// Ambient is the ambient light brightness, white.
	Ambient float32
	// Camera is the eye transform, overwritten every frame.
	Camera mgl32.Mat4
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{Camera: mgl32.Ident4()}
}

func (s *Scene) AddMesh(m *meshing.Mesh) MeshHandle     { return MeshHandle(s.meshes.add(m)) }
func (s *Scene) AddTexture(t Texture) TextureHandle     { return TextureHandle(s.textures.add(t)) }
func (s *Scene) AddMaterial(m Material) MaterialHandle { return MaterialHandle(s.materials.add(m)) }

// AddObject checks that the mesh and material exist.
func (s *Scene) AddObject(o Object) (ObjectHandle, error) {
	if _, err := s.Mesh(o.Mesh); err != nil {
		return 0, err
	}
	mat, err := s.Material(o.Material)
	if err != nil {
		return 0, err
	}
	if mat.Texture != 0 {
		if _, err := s.Texture(mat.Texture); err != nil {
			return 0, err
		}
	}
	return ObjectHandle(s.objects.add(o)), nil
}

func (s *Scene) Mesh(h MeshHandle) (*meshing.Mesh, error) {
	m, ok := s.meshes.get(uint32(h))
	if !ok {
		return nil, fmt.Errorf("%w: mesh %d", ErrInvalidHandle, h)
	}
	return m, nil
}

func (s *Scene) Material(h MaterialHandle) (Material, error) {
	m, ok := s.materials.get(uint32(h))
	if !ok {
		return Material{}, fmt.Errorf("%w: material %d", ErrInvalidHandle, h)
	}
	return m, nil
}

func (s *Scene) Texture(h TextureHandle) (Texture, error) {
	t, ok := s.textures.get(uint32(h))
	if !ok {
		return Texture{}, fmt.Errorf("%w: texture %d", ErrInvalidHandle, h)
	}
	return t, nil
}

func (s *Scene) Object(h ObjectHandle) (Object, error) {
	o, ok := s.objects.get(uint32(h))
	if !ok {
		return Object{}, fmt.Errorf("%w: object %d", ErrInvalidHandle, h)
	}
	return o, nil
}

// SetTransform replaces an object's transform.
func (s *Scene) SetTransform(h ObjectHandle, t Transform) error {
	o, ok := s.objects.get(uint32(h))
	if !ok {
		return fmt.Errorf("%w: object %d", ErrInvalidHandle, h)
	}
	o.Transform = t
	s.objects.set(uint32(h), o)
	return nil
}

// RemoveObject frees an object slot. The handle becomes invalid.
func (s *Scene) RemoveObject(h ObjectHandle) error {
	if !s.objects.remove(uint32(h)) {
		return fmt.Errorf("%w: object %d", ErrInvalidHandle, h)
	}
	return nil
}

// Meshes calls fn for each live mesh in handle order.
func (s *Scene) Meshes(fn func(MeshHandle, *meshing.Mesh)) {
	s.meshes.each(func(h uint32, m *meshing.Mesh) { fn(MeshHandle(h), m) })
}

// Materials calls fn for each live material in handle order.
func (s *Scene) Materials(fn func(MaterialHandle, Material)) {
	s.materials.each(func(h uint32, m Material) { fn(MaterialHandle(h), m) })
}

// Textures calls fn for each live texture in handle order.
func (s *Scene) Textures(fn func(TextureHandle, Texture)) {
	s.textures.each(func(h uint32, t Texture) { fn(TextureHandle(h), t) })
}

// Objects calls fn for each live object in handle order.
func (s *Scene) Objects(fn func(ObjectHandle, Object)) {
	s.objects.each(func(h uint32, o Object) { fn(ObjectHandle(h), o) })
}

// NumObjects counts live objects.
func (s *Scene) NumObjects() int { return s.objects.len() }
