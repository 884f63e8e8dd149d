package graphics

import (
	"fmt"

	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// gpuMesh holds the GL objects for one scene mesh.
type gpuMesh struct {
	vao        uint32
	vbos       [5]uint32
	ebo        uint32
	indexCount int32
	tileExtent float32
}

// Renderer draws a scene's objects with one shader.
type Renderer struct {
	shader   *Shader
	camera   *Camera
	meshes   map[scene.MeshHandle]*gpuMesh
	textures *textureCache
	log      *zap.Logger
}

// NewRenderer configures GL state and compiles the voxel shader. A GL
// context must be current.
func NewRenderer(width, height int, fov float32, images ImageSource, log *zap.Logger) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	shader, err := NewShader(voxelVertSrc, voxelFragSrc)
	if err != nil {
		return nil, fmt.Errorf("voxel shader: %w", err)
	}
	r := &Renderer{
		shader:   shader,
		camera:   NewCamera(width, height, fov),
		meshes:   make(map[scene.MeshHandle]*gpuMesh),
		textures: newTextureCache(images),
		log:      log,
	}
	r.SetViewport(width, height)
	return r, nil
}

// Camera returns the projection camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// SetViewport updates the GL viewport and aspect ratio.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
}

// Upload sends every scene mesh that is not yet on the GPU.
func (r *Renderer) Upload(s *scene.Scene) {
	s.Meshes(func(h scene.MeshHandle, m *meshing.Mesh) {
		if _, ok := r.meshes[h]; ok {
			return
		}
		r.meshes[h] = uploadMesh(m)
		r.log.Debug("mesh uploaded", zap.Uint32("handle", uint32(h)), zap.Int("indices", len(m.Indices)))
	})
}

func uploadMesh(m *meshing.Mesh) *gpuMesh {
	g := &gpuMesh{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(int32(len(g.vbos)), &g.vbos[0])

	if len(m.Positions) > 0 {
		attrib := func(loc uint32, vbo uint32, comps int32, bytes int, ptr any) {
			gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
			gl.BufferData(gl.ARRAY_BUFFER, bytes, gl.Ptr(ptr), gl.STATIC_DRAW)
			gl.EnableVertexAttribArray(loc)
			gl.VertexAttribPointerWithOffset(loc, comps, gl.FLOAT, false, comps*4, 0)
		}
		attrib(0, g.vbos[0], 3, len(m.Positions)*12, &m.Positions[0][0])
		attrib(1, g.vbos[1], 3, len(m.Normals)*12, &m.Normals[0][0])
		attrib(2, g.vbos[2], 2, len(m.TexCoords)*8, &m.TexCoords[0][0])
		attrib(3, g.vbos[3], 4, len(m.Colors)*16, &m.Colors[0][0])
		// without tiling the shader samples TexCoords directly
		if len(m.Tiling) == len(m.Positions) {
			attrib(4, g.vbos[4], 4, len(m.Tiling)*16, &m.Tiling[0][0])
			g.tileExtent = m.TileExtent
		}

		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(&m.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g
}

type drawCall struct {
	obj scene.Object
	mat scene.Material
}

// Render clears the frame and draws mask materials, then blended ones with
// depth writes off.
func (r *Renderer) Render(s *scene.Scene, view mgl32.Mat4) error {
	defer profiling.Track("graphics.Render")()

	gl.ClearColor(0.1, 0.1, 0.12, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	var opaque, blended []drawCall
	var err error
	s.Objects(func(_ scene.ObjectHandle, o scene.Object) {
		mat, e := s.Material(o.Material)
		if e != nil {
			err = e
			return
		}
		if mat.Blend == scene.BlendAlpha {
			blended = append(blended, drawCall{o, mat})
		} else {
			opaque = append(opaque, drawCall{o, mat})
		}
	})
	if err != nil {
		return err
	}

	r.shader.Use()
	r.shader.SetMatrix4("view", view)
	r.shader.SetMatrix4("projection", r.camera.GetProjectionMatrix())
	r.shader.SetFloat("ambient", s.Ambient)
	r.shader.SetInt("atlas", 0)
	if len(s.Lights) > 0 {
		l := s.Lights[0]
		r.shader.SetVec3("lightPos", l.Position)
		r.shader.SetFloat("lightRange", l.Range)
		r.shader.SetFloat("lightIntensity", l.Intensity)
	} else {
		r.shader.SetFloat("lightIntensity", 0)
		r.shader.SetFloat("lightRange", 1)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	for _, dc := range opaque {
		if err := r.draw(s, dc); err != nil {
			return err
		}
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, dc := range blended {
		if err := r.draw(s, dc); err != nil {
			return err
		}
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) draw(s *scene.Scene, dc drawCall) error {
	g, ok := r.meshes[dc.obj.Mesh]
	if !ok {
		return fmt.Errorf("%w: mesh %d not uploaded", scene.ErrInvalidHandle, dc.obj.Mesh)
	}
	if g.indexCount == 0 {
		return nil
	}
	if dc.mat.Texture != 0 {
		tex, err := r.textures.get(s, dc.mat.Texture)
		if err != nil {
			return err
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	r.shader.SetMatrix4("model", dc.obj.Transform.Matrix())
	r.shader.SetVec4("baseColor", dc.mat.BaseColor)
	r.shader.SetBool("alphaMask", dc.mat.Blend == scene.BlendMask)
	r.shader.SetFloat("alphaCutoff", dc.mat.AlphaCutoff)
	r.shader.SetFloat("tileExtent", g.tileExtent)

	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
	return nil
}

// Dispose frees GL objects.
func (r *Renderer) Dispose() {
	for h, g := range r.meshes {
		gl.DeleteBuffers(int32(len(g.vbos)), &g.vbos[0])
		if g.ebo != 0 {
			gl.DeleteBuffers(1, &g.ebo)
		}
		gl.DeleteVertexArrays(1, &g.vao)
		delete(r.meshes, h)
	}
	r.textures.dispose()
	r.shader.Delete()
}
