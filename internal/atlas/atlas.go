// Package atlas maps voxel kinds to square tiles of a texture atlas.
package atlas

import (
	"errors"
	"fmt"
	"math"

	"voxmesh/internal/voxel"
)

var ErrAtlasMismatch = errors.New("atlas: texture does not match layout")

// UnknownTile is the tile offset used for kinds without a mapping.
const UnknownTile = 1

// tileOffsets is 1-based: offset o covers tile column/row o-1.
var tileOffsets = map[voxel.Kind]int{
	voxel.A1: 10,
	voxel.A2: 16,
}

// Layout describes a square atlas made of square tiles, in texels.
type Layout struct {
	TileSize  float32 `yaml:"tile_size"`
	AtlasSize float32 `yaml:"atlas_size"`
}

// DefaultLayout is a 1024 texel atlas of 64 texel tiles.
func DefaultLayout() Layout {
	return Layout{TileSize: 64, AtlasSize: 1024}
}

// Validate rejects layouts that do not divide into whole tiles.
func (l Layout) Validate() error {
	if l.TileSize <= 0 || l.AtlasSize <= 0 {
		return fmt.Errorf("atlas: sizes must be positive (tile %v, atlas %v)", l.TileSize, l.AtlasSize)
	}
	n := l.AtlasSize / l.TileSize
	if n < 1 || n != float32(math.Floor(float64(n))) {
		return fmt.Errorf("atlas: %v is not a multiple of tile size %v", l.AtlasSize, l.TileSize)
	}
	if max := l.Tiles(); max < 16 {
		return fmt.Errorf("atlas: %d tiles per row, mapped kinds need 16", max)
	}
	return nil
}

// Tiles is the number of tiles along one edge.
func (l Layout) Tiles() int {
	return int(l.AtlasSize / l.TileSize)
}

// CheckImage verifies a decoded texture has the layout's dimensions.
func (l Layout) CheckImage(w, h int) error {
	if float32(w) != l.AtlasSize || float32(h) != l.AtlasSize {
		return fmt.Errorf("%w: image %dx%d, layout %v", ErrAtlasMismatch, w, h, l.AtlasSize)
	}
	return nil
}

// TileFor returns the tile offset for k and whether k is mapped.
func TileFor(k voxel.Kind) (int, bool) {
	o, ok := tileOffsets[k]
	return o, ok
}

// UV returns the four corners of a 1×1 tile square at the given offset in
// the order (min,min) (max,min) (min,max) (max,max).
func (l Layout) UV(offset int) [4][2]float32 {
	lo := (float32(offset-1) * l.TileSize) / l.AtlasSize
	hi := (float32(offset) * l.TileSize) / l.AtlasSize
	return [4][2]float32{
		{lo, lo},
		{hi, lo},
		{lo, hi},
		{hi, hi},
	}
}

// KindUV returns the tile corners for k. Unmapped kinds get the UnknownTile
// square and ok=false.
func (l Layout) KindUV(k voxel.Kind) (uv [4][2]float32, ok bool) {
	o, ok := TileFor(k)
	if !ok {
		o = UnknownTile
	}
	return l.UV(o), ok
}
