package app

import (
	"time"

	"voxmesh/internal/config"
)

// loadingFPS caps the loop while the atlas is still decoding.
const loadingFPS = 30

// FPSLimiter paces the frame loop to config.GetFPSLimit.
type FPSLimiter struct {
	next time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame is due. While loading there is nothing to
// draw, so the loop runs at loadingFPS regardless of the configured cap.
func (f *FPSLimiter) Wait(loading bool) {
	limit := config.GetFPSLimit()
	if loading {
		limit = loadingFPS
	}

	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// spin out the last few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
