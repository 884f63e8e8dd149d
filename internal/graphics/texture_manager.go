package graphics

import (
	"fmt"
	"image"

	"voxmesh/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ImageSource resolves a scene texture path to decoded pixels.
type ImageSource func(path string) (*image.RGBA, error)

// textureCache maps scene textures to GL objects, uploading on first use.
type textureCache struct {
	src ImageSource
	ids map[scene.TextureHandle]uint32
}

func newTextureCache(src ImageSource) *textureCache {
	return &textureCache{src: src, ids: make(map[scene.TextureHandle]uint32)}
}

func (c *textureCache) get(s *scene.Scene, h scene.TextureHandle) (uint32, error) {
	if id, ok := c.ids[h]; ok {
		return id, nil
	}
	t, err := s.Texture(h)
	if err != nil {
		return 0, err
	}
	img, err := c.src(t.Path)
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", t.Path, err)
	}
	id := UploadTexture(img)
	c.ids[h] = id
	return id, nil
}

func (c *textureCache) dispose() {
	for h, id := range c.ids {
		gl.DeleteTextures(1, &id)
		delete(c.ids, h)
	}
}
