package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"voxmesh/internal/atlas"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// pollUntil mimics the frame loop: poll once per tick until the state settles.
func pollUntil(t *testing.T, tex *Texture) LoadState {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s := tex.Poll(); s != Loading {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("texture never left Loading")
	return Loading
}

func TestLoadReady(t *testing.T) {
	fsys := fstest.MapFS{"uv.png": {Data: pngBytes(t, 16, 16)}}
	l := NewLoader(WithFS(fsys))
	defer l.Close()

	tex := l.Load("uv.png")
	if s := pollUntil(t, tex); s != Ready {
		t.Fatalf("state: got %s, want ready (err %v)", s, tex.Err())
	}
	img, err := tex.Image()
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 16 || img.Rect.Dy() != 16 {
		t.Fatalf("size: got %v", img.Rect)
	}
	if got := img.RGBAAt(1, 1); got.R != 255 || got.A != 255 {
		t.Fatalf("pixel: got %v", got)
	}
}

func TestLoadMissingFails(t *testing.T) {
	l := NewLoader(WithFS(fstest.MapFS{}))
	defer l.Close()

	tex := l.Load("missing.png")
	if s := pollUntil(t, tex); s != Failed {
		t.Fatalf("state: got %s, want failed", s)
	}
	if tex.Err() == nil {
		t.Fatal("failed texture has no error")
	}
	if _, err := tex.Image(); err == nil {
		t.Fatal("Image on failed texture returned no error")
	}
}

func TestLoadCorruptFails(t *testing.T) {
	l := NewLoader(WithFS(fstest.MapFS{"bad.png": {Data: []byte("not a png")}}))
	defer l.Close()
	state, err := l.Load("bad.png").Wait(context.Background())
	if state != Failed || err == nil {
		t.Fatalf("got %s / %v, want failed with error", state, err)
	}
}

func TestValidatorRejectsWrongAtlasSize(t *testing.T) {
	fsys := fstest.MapFS{"small.png": {Data: pngBytes(t, 32, 32)}}
	l := NewLoader(WithFS(fsys), WithValidator(atlas.DefaultLayout().CheckImage))
	defer l.Close()
	_, err := l.Load("small.png").Wait(context.Background())
	if !errors.Is(err, atlas.ErrAtlasMismatch) {
		t.Fatalf("got %v, want ErrAtlasMismatch", err)
	}
}

func TestLoadIsCached(t *testing.T) {
	l := NewLoader(WithFS(fstest.MapFS{"a.png": {Data: pngBytes(t, 4, 4)}}))
	defer l.Close()
	if l.Load("a.png") != l.Load("a.png") {
		t.Fatal("second load returned a different texture")
	}
}

func TestImageBeforeReady(t *testing.T) {
	tex := &Texture{state: Loading, done: make(chan struct{})}
	if _, err := tex.Image(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("got %v, want ErrNotReady", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	if s, err := tex.Wait(ctx); s != Loading || err == nil {
		t.Fatalf("got %s / %v, want loading with ctx error", s, err)
	}
}
