// SPDX-License-Identifier: Unlicense OR MIT

package texture

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
)

// placeholder is the 1×1 opaque blue pixel a texture holds until its
// image arrives.
var placeholder = []byte{0, 0, 255, 255}

// Options configure a texture. Zero values select the defaults:
// gl.LINEAR filters, gl.REPEAT wrapping, gl.RGBA format and no tiling.
type Options struct {
	Unit         int
	URL          string
	Min, Mag     gl.Enum
	WrapS, WrapT gl.Enum
	// Format is gl.RGBA, gl.RGB or gl.LUMINANCE.
	Format gl.Enum
	// Scale tiles the image X×Y times within its own size.
	Scale Scale
}

type Scale struct {
	X, Y int
}

// ReadyFunc is called on the GL thread once the image of tex is
// uploaded. img is the uploaded image, after tiling.
type ReadyFunc func(tex gl.Texture, img image.Image)

// Loader creates textures and loads their images in the background.
// Fetching and decoding run in their own goroutines; uploads happen in
// Poll, which must be called from the goroutine owning the context.
type Loader struct {
	// Timeout bounds each fetch. Zero means no timeout.
	Timeout time.Duration

	ctx     *glctx.Context
	fetcher Fetcher
	images  *lru.Cache

	mu      sync.Mutex
	done    []*load
	pending int
	wg      sync.WaitGroup
}

type load struct {
	tex     gl.Texture
	opts    Options
	onReady ReadyFunc

	img *image.NRGBA
	pix []byte
	err error
}

type cacheKey struct {
	url    string
	sx, sy int
}

// imageCacheSize is the number of decoded images kept for reuse.
const imageCacheSize = 32

// NewLoader returns a Loader fetching images through f.
func NewLoader(ctx *glctx.Context, f Fetcher) *Loader {
	// lru.New only fails for non-positive sizes.
	images, _ := lru.New(imageCacheSize)
	return &Loader{ctx: ctx, fetcher: f, images: images}
}

// CreateTexture creates a texture holding a placeholder pixel and, if
// opts.URL is set, starts loading its image. The texture is usable
// immediately. A load that fails is logged and leaves the placeholder.
// There is no way to cancel a load; onReady, if not nil, is called
// from Poll when it completes.
func (l *Loader) CreateTexture(opts Options, onReady ReadyFunc) gl.Texture {
	opts = opts.withDefaults()
	ctx := l.ctx
	tex := ctx.CreateTexture()
	if !tex.Valid() {
		ctx.Log.Error("texture: unable to create texture", "url", opts.URL)
		return tex
	}
	ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(opts.Unit))
	ctx.BindTexture(gl.TEXTURE_2D, tex)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int(opts.Min))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int(opts.Mag))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int(opts.WrapT))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int(opts.WrapS))
	ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, placeholder)
	if opts.URL == "" {
		return tex
	}
	ld := &load{tex: tex, opts: opts, onReady: onReady}
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.fetch(ld)
		l.mu.Lock()
		l.done = append(l.done, ld)
		l.mu.Unlock()
	}()
	return tex
}

func (o Options) withDefaults() Options {
	if o.Min == 0 {
		o.Min = gl.LINEAR
	}
	if o.Mag == 0 {
		o.Mag = gl.LINEAR
	}
	if o.WrapS == 0 {
		o.WrapS = gl.REPEAT
	}
	if o.WrapT == 0 {
		o.WrapT = gl.REPEAT
	}
	if o.Format == 0 {
		o.Format = gl.RGBA
	}
	return o
}

func (l *Loader) fetch(ld *load) {
	key := cacheKey{url: ld.opts.URL, sx: ld.opts.Scale.X, sy: ld.opts.Scale.Y}
	if v, ok := l.images.Get(key); ok {
		ld.img = v.(*image.NRGBA)
	} else {
		img, err := l.decode(ld.opts.URL)
		if err != nil {
			ld.err = err
			return
		}
		ld.img = Tile(img, ld.opts.Scale.X, ld.opts.Scale.Y)
		l.images.Add(key, ld.img)
	}
	pix, ok := pixels(ld.img, ld.opts.Format)
	if !ok {
		ld.err = fmt.Errorf("texture: unsupported format 0x%x", uint(ld.opts.Format))
		return
	}
	ld.pix = pix
}

func (l *Loader) decode(url string) (image.Image, error) {
	ctx := context.Background()
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	r, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", url, err)
	}
	return img, nil
}

// Poll uploads the images loaded since the last call and runs their
// ReadyFuncs. It returns the number of textures completed.
func (l *Loader) Poll() int {
	l.mu.Lock()
	done := l.done
	l.done = nil
	l.pending -= len(done)
	l.mu.Unlock()
	ctx := l.ctx
	for _, ld := range done {
		if ld.err != nil {
			ctx.Log.Error("texture: failed to load image", "url", ld.opts.URL, "err", ld.err)
			continue
		}
		w, h := ld.img.Rect.Dx(), ld.img.Rect.Dy()
		ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(ld.opts.Unit))
		ctx.BindTexture(gl.TEXTURE_2D, ld.tex)
		ctx.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		ctx.TexImage2D(gl.TEXTURE_2D, 0, ld.opts.Format, w, h, ld.opts.Format, gl.UNSIGNED_BYTE, ld.pix)
		ctx.GenerateMipmap(gl.TEXTURE_2D)
		if ld.onReady != nil {
			ld.onReady(ld.tex, ld.img)
		}
	}
	return len(done)
}

// Pending returns the number of loads not yet completed by Poll.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Wait blocks until every started load is ready for Poll.
func (l *Loader) Wait() {
	l.wg.Wait()
}
