package config

import "sync"

// RenderSettings holds values the frame loop reads every frame and that may
// change while running.
type RenderSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = uncapped
}

var globalRenderSettings = &RenderSettings{}

// GetFPSLimit returns the current frame cap, 0 meaning none.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values disable it; caps above
// 1000 are clamped.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}
