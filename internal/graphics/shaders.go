package graphics

import _ "embed"

var (
	//go:embed shaders/voxel.vert
	voxelVertSrc string
	//go:embed shaders/voxel.frag
	voxelFragSrc string
)
