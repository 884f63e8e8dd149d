// Package assets loads textures in the background and reports readiness
// through an explicit poll.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // BMP decoder registration
	xdraw "golang.org/x/image/draw"
)

// LoadState is the readiness of one asset.
type LoadState int

const (
	Loading LoadState = iota
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

var ErrNotReady = errors.New("assets: texture not ready")

// Texture is a decoded RGBA image that may still be loading.
type Texture struct {
	Path string

	mu    sync.Mutex
	state LoadState
	img   *image.RGBA
	err   error
	done  chan struct{}
}

// Poll returns the current state without blocking.
func (t *Texture) Poll() LoadState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Err is the load failure, nil unless Poll returns Failed.
func (t *Texture) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Image returns the decoded pixels once Ready.
func (t *Texture) Image() (*image.RGBA, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case Ready:
		return t.img, nil
	case Failed:
		return nil, t.err
	default:
		return nil, ErrNotReady
	}
}

// Wait blocks until the texture leaves Loading or ctx ends.
func (t *Texture) Wait(ctx context.Context) (LoadState, error) {
	select {
	case <-t.done:
		return t.Poll(), t.Err()
	case <-ctx.Done():
		return Loading, ctx.Err()
	}
}

func (t *Texture) finish(img *image.RGBA, err error) {
	t.mu.Lock()
	if err != nil {
		t.state = Failed
		t.err = err
	} else {
		t.state = Ready
		t.img = img
	}
	t.mu.Unlock()
	close(t.done)
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS reads assets from fsys instead of the working directory.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) { l.fsys = fsys }
}

// WithLogger sets the loader's logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithValidator rejects decoded images, e.g. ones that do not fit the atlas layout.
func WithValidator(check func(w, h int) error) Option {
	return func(l *Loader) { l.validate = check }
}

// Loader decodes textures on background goroutines and caches them by path.
type Loader struct {
	fsys     fs.FS
	log      *zap.Logger
	validate func(w, h int) error

	mu    sync.Mutex
	cache map[string]*Texture
	wg    sync.WaitGroup
}

// NewLoader returns a loader rooted at the working directory by default.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fsys:  os.DirFS("."),
		log:   zap.NewNop(),
		cache: make(map[string]*Texture),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load starts loading path, or returns the texture already started for it.
func (l *Loader) Load(path string) *Texture {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.cache[path]; ok {
		return t
	}
	t := &Texture{Path: path, state: Loading, done: make(chan struct{})}
	l.cache[path] = t
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.decode(path)
		if err != nil {
			l.log.Warn("texture load failed", zap.String("path", path), zap.Error(err))
		} else {
			l.log.Debug("texture loaded", zap.String("path", path),
				zap.Int("width", img.Rect.Dx()), zap.Int("height", img.Rect.Dy()))
		}
		t.finish(img, err)
	}()
	return t
}

// Close waits for outstanding loads.
func (l *Loader) Close() {
	l.wg.Wait()
}

func (l *Loader) decode(path string) (*image.RGBA, error) {
	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	b := img.Bounds()
	if l.validate != nil {
		if err := l.validate(b.Dx(), b.Dy()); err != nil {
			return nil, fmt.Errorf("texture %s: %w", path, err)
		}
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)
	return rgba, nil
}
