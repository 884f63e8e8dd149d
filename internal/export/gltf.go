// Package export writes a scene to a binary glTF file.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"voxmesh/internal/meshing"
	"voxmesh/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ImageSource resolves a scene texture path to pixels for embedding.
type ImageSource func(path string) (*image.RGBA, error)

// Document converts the scene into a glTF document: one glTF mesh per scene
// mesh and material pair, textures embedded as PNG, one node per object.
func Document(s *scene.Scene, images ImageSource) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "voxmesh"

	textures := make(map[scene.TextureHandle]int)
	var texErr error
	s.Textures(func(h scene.TextureHandle, t scene.Texture) {
		if texErr != nil || images == nil {
			return
		}
		img, err := images(t.Path)
		if err != nil {
			texErr = fmt.Errorf("texture %s: %w", t.Path, err)
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			texErr = fmt.Errorf("encode %s: %w", t.Path, err)
			return
		}
		imgIdx, err := modeler.WriteImage(doc, t.Path, "image/png", &buf)
		if err != nil {
			texErr = err
			return
		}
		doc.Samplers = append(doc.Samplers, &gltf.Sampler{
			MagFilter: gltf.MagNearest,
			MinFilter: gltf.MinNearest,
			WrapS:     gltf.WrapRepeat,
			WrapT:     gltf.WrapRepeat,
		})
		doc.Textures = append(doc.Textures, &gltf.Texture{
			Source:  gltf.Index(imgIdx),
			Sampler: gltf.Index(len(doc.Samplers) - 1),
		})
		textures[h] = len(doc.Textures) - 1
	})
	if texErr != nil {
		return nil, texErr
	}

	materials := make(map[scene.MaterialHandle]int)
	s.Materials(func(h scene.MaterialHandle, m scene.Material) {
		bc := [4]float64{float64(m.BaseColor[0]), float64(m.BaseColor[1]), float64(m.BaseColor[2]), float64(m.BaseColor[3])}
		pbr := &gltf.PBRMetallicRoughness{
			BaseColorFactor: &bc,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(float64(m.Roughness)),
		}
		if idx, ok := textures[m.Texture]; ok {
			pbr.BaseColorTexture = &gltf.TextureInfo{Index: idx}
		}
		mat := &gltf.Material{
			Name:                 fmt.Sprintf("material-%d-%s", h, m.Blend),
			PBRMetallicRoughness: pbr,
		}
		switch m.Blend {
		case scene.BlendAlpha:
			mat.AlphaMode = gltf.AlphaBlend
		default:
			mat.AlphaMode = gltf.AlphaMask
			mat.AlphaCutoff = gltf.Float(float64(m.AlphaCutoff))
		}
		doc.Materials = append(doc.Materials, mat)
		materials[h] = len(doc.Materials) - 1
	})

	// Vertex data is written once per scene mesh and shared by every
	// primitive that draws it.
	type accessors struct {
		attrs   map[string]int
		indices int
		empty   bool
	}
	written := make(map[scene.MeshHandle]accessors)
	s.Meshes(func(h scene.MeshHandle, m *meshing.Mesh) {
		if m.NumVertices() == 0 {
			written[h] = accessors{empty: true}
			return
		}
		written[h] = accessors{
			attrs: map[string]int{
				gltf.POSITION:   modeler.WritePosition(doc, m.Positions),
				gltf.NORMAL:     modeler.WriteNormal(doc, m.Normals),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, m.TexCoords),
				gltf.COLOR_0:    modeler.WriteColor(doc, m.Colors),
			},
			indices: modeler.WriteIndices(doc, m.Indices),
		}
	})

	var objErr error
	s.Objects(func(h scene.ObjectHandle, o scene.Object) {
		if objErr != nil {
			return
		}
		acc, ok := written[o.Mesh]
		if !ok {
			objErr = fmt.Errorf("%w: object %d mesh %d", scene.ErrInvalidHandle, h, o.Mesh)
			return
		}
		node := &gltf.Node{
			Name:        fmt.Sprintf("object-%d", h),
			Translation: vec3(o.Transform.Translation),
			Rotation:    rotation(o.Transform.Rotation),
			Scale:       scale(o.Transform.Scale),
		}
		if !acc.empty {
			prim := &gltf.Primitive{
				Attributes: acc.attrs,
				Indices:    gltf.Index(acc.indices),
				Mode:       gltf.PrimitiveTriangles,
			}
			if mi, ok := materials[o.Material]; ok {
				prim.Material = gltf.Index(mi)
			}
			doc.Meshes = append(doc.Meshes, &gltf.Mesh{
				Name:       fmt.Sprintf("voxels-%d", o.Mesh),
				Primitives: []*gltf.Primitive{prim},
			})
			node.Mesh = gltf.Index(len(doc.Meshes) - 1)
		}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	})
	if objErr != nil {
		return nil, objErr
	}
	return doc, nil
}

func vec3(v mgl32.Vec3) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

// rotation is glTF's (x, y, z, w) order. The zero quaternion means identity,
// as in scene.Transform.Matrix.
func rotation(q mgl32.Quat) [4]float64 {
	if q == (mgl32.Quat{}) {
		q = mgl32.QuatIdent()
	}
	return [4]float64{float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)}
}

// scale is uniform; zero means 1, as in scene.Transform.Matrix.
func scale(s float32) [3]float64 {
	if s == 0 {
		s = 1
	}
	return [3]float64{float64(s), float64(s), float64(s)}
}

// WriteGLB encodes the scene as binary glTF to w.
func WriteGLB(w io.Writer, s *scene.Scene, images ImageSource) error {
	doc, err := Document(s, images)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// SaveGLB writes the scene to path.
func SaveGLB(path string, s *scene.Scene, images ImageSource) error {
	doc, err := Document(s, images)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}
