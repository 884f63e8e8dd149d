package app

import (
	"fmt"
	"math/rand"
	"time"

	"voxmesh/internal/config"
	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/scene"
	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	maskCutoff      = 1.0
	ambient         = 0.5
	lightRange      = 200
	lightIntensity  = 50000
	meshTranslation = -10
)

var lightPosition = mgl32.Vec3{0, 50, 50}

// Setup is everything the first frame after loading produces.
type Setup struct {
	Seed  int64
	Grid  *voxel.Grid
	Mesh  *meshing.Mesh
	Scene *scene.Scene
}

// BuildScene generates a random grid, meshes it and wraps the mesh in a
// scene with two objects: one alpha-masked and one alpha-blended, both
// drawing the same mesh with the atlas at texturePath.
func BuildScene(cfg *config.Config, texturePath string, log *zap.Logger) (*Setup, error) {
	defer profiling.Track("app.BuildScene")()
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grid, err := voxel.Generate(voxel.Cube(cfg.World.Size), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("generate grid: %w", err)
	}

	mesher, err := meshing.MesherByName(cfg.Mesh.Algorithm)
	if err != nil {
		return nil, err
	}
	mesh, err := meshing.Build(grid, meshing.RightHandedYUp, meshing.Options{
		Mesher:    mesher,
		VoxelSize: cfg.Mesh.VoxelSize,
		Layout:    cfg.Atlas,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("mesh grid: %w", err)
	}

	s := scene.New()
	tex := s.AddTexture(scene.Texture{Path: texturePath})
	mh := s.AddMesh(mesh)
	white := mgl32.Vec4{1, 1, 1, 1}
	masked := s.AddMaterial(scene.Material{
		Texture:     tex,
		Blend:       scene.BlendMask,
		AlphaCutoff: maskCutoff,
		BaseColor:   white,
		Roughness:   1,
	})
	blended := s.AddMaterial(scene.Material{
		Texture:   tex,
		Blend:     scene.BlendAlpha,
		BaseColor: white,
		Roughness: 1,
	})
	offset := scene.Translate(mgl32.Vec3{meshTranslation, meshTranslation, meshTranslation})
	for _, mat := range []scene.MaterialHandle{masked, blended} {
		if _, err := s.AddObject(scene.Object{Mesh: mh, Material: mat, Transform: offset}); err != nil {
			return nil, err
		}
	}
	s.Lights = append(s.Lights, scene.PointLight{
		Position:  lightPosition,
		Range:     lightRange,
		Intensity: lightIntensity,
		Shadows:   true,
	})
	s.Ambient = ambient

	log.Info("scene ready",
		zap.Int64("seed", seed),
		zap.String("mesher", mesher.Name()),
		zap.Int("voxels", grid.Count()),
		zap.Int("quads", mesh.NumQuads()),
		zap.Int("vertices", mesh.NumVertices()),
		zap.String("fingerprint", fmt.Sprintf("%016x", mesh.Fingerprint())),
	)
	return &Setup{Seed: seed, Grid: grid, Mesh: mesh, Scene: s}, nil
}
