// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
	"glbind.org/internal/gltest"
)

func newContext(t *testing.T) (*glctx.Context, *gltest.Functions) {
	t.Helper()
	f := gltest.New()
	ctx := glctx.New(f, glctx.WebGL2, glctx.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	f.Reset()
	return ctx, f
}

func TestCreateFramebuffer(t *testing.T) {
	ctx, f := newContext(t)
	fbo, err := CreateFramebuffer(ctx, FramebufferOptions{Width: 256, Unit: 2})
	require.NoError(t, err)
	assert.Equal(t, 256, fbo.Width)
	assert.Equal(t, 1024, fbo.Height)
	assert.Equal(t, 1, f.Live("framebuffer"))
	assert.Equal(t, 1, f.Live("texture"))
	assert.Equal(t, 1, f.Live("renderbuffer"))

	assert.Equal(t, []interface{}{gl.Enum(gl.TEXTURE0 + 2)}, f.Named("ActiveTexture")[0].Args)
	assert.Equal(t, []interface{}{gl.Enum(gl.RENDERBUFFER), gl.Enum(gl.DEPTH_COMPONENT16), 256, 1024}, f.Named("RenderbufferStorage")[0].Args)
	for _, c := range f.Named("TexParameteri") {
		switch c.Args[1] {
		case gl.Enum(gl.TEXTURE_MIN_FILTER), gl.Enum(gl.TEXTURE_MAG_FILTER):
			assert.Equal(t, gl.NEAREST, c.Args[2])
		default:
			assert.Equal(t, gl.CLAMP_TO_EDGE, c.Args[2])
		}
	}

	n := len(f.Calls)
	assert.Equal(t, []gltest.Call{
		{Name: "BindFramebuffer", Args: []interface{}{gl.Enum(gl.FRAMEBUFFER), uint(0)}},
		{Name: "BindRenderbuffer", Args: []interface{}{gl.Enum(gl.RENDERBUFFER), uint(0)}},
		{Name: "BindTexture", Args: []interface{}{gl.Enum(gl.TEXTURE_2D), uint(0)}},
	}, f.Calls[n-3:])

	f.Reset()
	fb := fbo.Framebuffer.V
	fbo.Bind(ctx)
	assert.Equal(t, []gltest.Call{
		{Name: "BindFramebuffer", Args: []interface{}{gl.Enum(gl.FRAMEBUFFER), fb}},
		{Name: "Viewport", Args: []interface{}{0, 0, 256, 1024}},
	}, f.Calls)

	fbo.Release(ctx)
	assert.Equal(t, 0, f.LiveTotal())
	assert.False(t, fbo.Texture.Valid())
}

func TestCreateFramebufferRollback(t *testing.T) {
	for _, method := range []string{"CreateFramebuffer", "CreateTexture", "CreateRenderbuffer"} {
		t.Run(method, func(t *testing.T) {
			ctx, f := newContext(t)
			f.Fail[method] = true
			fbo, err := CreateFramebuffer(ctx, FramebufferOptions{})
			require.ErrorIs(t, err, ErrAllocation)
			assert.Nil(t, fbo)
			assert.Equal(t, 0, f.LiveTotal())
		})
	}
	t.Run("incomplete", func(t *testing.T) {
		ctx, f := newContext(t)
		f.Status = gl.FRAMEBUFFER_UNSUPPORTED
		_, err := CreateFramebuffer(ctx, FramebufferOptions{})
		require.ErrorIs(t, err, ErrFramebufferIncomplete)
		assert.Contains(t, err.Error(), "FRAMEBUFFER_UNSUPPORTED")
		assert.Equal(t, 0, f.LiveTotal())
	})
}

// memFetcher serves images from memory and counts fetches.
type memFetcher struct {
	mu      sync.Mutex
	files   map[string][]byte
	fetches int
}

func (m *memFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	data, ok := m.files[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// twoRows is a 1×2 image, red above blue.
func twoRows(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCreateTexturePlaceholder(t *testing.T) {
	ctx, f := newContext(t)
	l := NewLoader(ctx, &memFetcher{})
	tex := l.CreateTexture(Options{Unit: 1}, func(gl.Texture, image.Image) {
		t.Error("no image to load")
	})
	require.True(t, tex.Valid())
	uploads := f.Named("TexImage2D")
	require.Len(t, uploads, 1)
	assert.Equal(t, []interface{}{gl.Enum(gl.TEXTURE_2D), 0, gl.Enum(gl.RGBA), 1, 1, gl.Enum(gl.RGBA), gl.Enum(gl.UNSIGNED_BYTE), []byte{0, 0, 255, 255}}, uploads[0].Args)
	assert.Equal(t, []interface{}{gl.Enum(gl.TEXTURE0 + 1)}, f.Named("ActiveTexture")[0].Args)
	params := f.Named("TexParameteri")
	require.Len(t, params, 4)
	assert.Equal(t, gl.LINEAR, params[0].Args[2])
	assert.Equal(t, gl.REPEAT, params[3].Args[2])

	assert.Equal(t, 0, l.Pending())
	f.Reset()
	l.Wait()
	assert.Equal(t, 0, l.Poll())
	assert.Empty(t, f.Calls)
}

func TestCreateTextureLoads(t *testing.T) {
	ctx, f := newContext(t)
	fetcher := &memFetcher{files: map[string][]byte{"img.png": twoRows(t)}}
	l := NewLoader(ctx, fetcher)
	var ready []gl.Texture
	onReady := func(tex gl.Texture, img image.Image) {
		assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
		ready = append(ready, tex)
	}
	tex := l.CreateTexture(Options{URL: "img.png", Format: gl.RGB, Min: gl.LINEAR_MIPMAP_LINEAR}, onReady)
	l.Wait()
	assert.Equal(t, 1, l.Pending(), "uploads wait for Poll")

	f.Reset()
	assert.Equal(t, 1, l.Poll())
	assert.Equal(t, 0, l.Pending())
	assert.Equal(t, []gl.Texture{tex}, ready)
	uploads := f.Named("TexImage2D")
	require.Len(t, uploads, 1)
	assert.Equal(t, []interface{}{gl.Enum(gl.TEXTURE_2D), 0, gl.Enum(gl.RGB), 1, 2, gl.Enum(gl.RGB), gl.Enum(gl.UNSIGNED_BYTE), []byte{0, 0, 255, 255, 0, 0}}, uploads[0].Args, "rows are flipped")
	assert.Equal(t, 1, f.Count("GenerateMipmap"))

	l.CreateTexture(Options{URL: "img.png"}, nil)
	l.Wait()
	assert.Equal(t, 1, l.Poll())
	assert.Equal(t, 1, fetcher.fetches, "decoded images are reused")
}

func TestCreateTextureLoadFailure(t *testing.T) {
	ctx, f := newContext(t)
	l := NewLoader(ctx, &memFetcher{files: map[string][]byte{"bad.png": []byte("not an image")}})
	called := false
	l.CreateTexture(Options{URL: "missing.png"}, func(gl.Texture, image.Image) { called = true })
	l.CreateTexture(Options{URL: "bad.png"}, func(gl.Texture, image.Image) { called = true })
	l.Wait()
	f.Reset()
	assert.Equal(t, 2, l.Poll())
	assert.False(t, called)
	assert.Equal(t, 0, f.Count("TexImage2D"), "the placeholder stays")
}

func TestTile(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 2 {
				c = color.NRGBA{B: 255, A: 255}
			}
			src.SetNRGBA(x, y, c)
		}
	}
	dst := Tile(src, 2, 1)
	require.Equal(t, src.Bounds(), dst.Bounds())
	for x, wantRed := range []bool{true, false, true, false} {
		c := dst.NRGBAAt(x, 2)
		if wantRed {
			assert.Greater(t, c.R, uint8(200), "x=%d", x)
			assert.Less(t, c.B, uint8(50), "x=%d", x)
		} else {
			assert.Greater(t, c.B, uint8(200), "x=%d", x)
			assert.Less(t, c.R, uint8(50), "x=%d", x)
		}
	}

	same := Tile(src, 0, 1)
	assert.Equal(t, src.Pix, same.Pix)
}

func TestHTTPFetcher(t *testing.T) {
	data := twoRows(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client(), Origin: srv.URL}
	r, err := f.Fetch(context.Background(), "/img.png")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	r.Close()
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), "ftp://example.com/img.png")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	r, err = (&HTTPFetcher{}).Fetch(context.Background(), path)
	require.NoError(t, err)
	r.Close()
}

func TestCrossOrigin(t *testing.T) {
	f := &HTTPFetcher{Origin: "https://example.com"}
	tests := map[string]bool{
		"https://example.com/a.png":     false,
		"https://EXAMPLE.com/a.png":     false,
		"http://example.com/a.png":      true,
		"https://cdn.example.com/a.png": true,
		"https://example.com:8443/a":    true,
	}
	for raw, want := range tests {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, f.crossOrigin(u), raw)
	}
	assert.False(t, (&HTTPFetcher{}).crossOrigin(&url.URL{Scheme: "https", Host: "x"}))
}
