// SPDX-License-Identifier: Unlicense OR MIT

// Package texture allocates offscreen render targets and textures,
// and loads texture images in the background.
package texture

import (
	"errors"
	"fmt"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
)

var (
	ErrFramebufferIncomplete = errors.New("texture: framebuffer incomplete")
	ErrAllocation            = errors.New("texture: object allocation failed")
)

// FramebufferOptions configure CreateFramebuffer. Zero sizes mean
// 1024.
type FramebufferOptions struct {
	Width, Height int
	// Unit is the texture unit the color texture is bound to while it
	// is set up.
	Unit int
}

// Framebuffer is an offscreen render target: a framebuffer with a
// color texture and a 16 bit depth renderbuffer.
type Framebuffer struct {
	Framebuffer   gl.Framebuffer
	Texture       gl.Texture
	Depth         gl.Renderbuffer
	Width, Height int
}

// CreateFramebuffer allocates a render target. If any step fails,
// every object allocated by the call is deleted. On success nothing is
// left bound.
func CreateFramebuffer(ctx *glctx.Context, opts FramebufferOptions) (*Framebuffer, error) {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 1024
	}
	fbo := &Framebuffer{Width: w, Height: h}
	fail := func(err error) (*Framebuffer, error) {
		fbo.Release(ctx)
		ctx.Log.Error("texture: failed to create framebuffer", "width", w, "height", h, "err", err)
		return nil, err
	}
	fbo.Framebuffer = ctx.CreateFramebuffer()
	if !fbo.Framebuffer.Valid() {
		return fail(fmt.Errorf("%w: framebuffer", ErrAllocation))
	}
	fbo.Texture = ctx.CreateTexture()
	if !fbo.Texture.Valid() {
		return fail(fmt.Errorf("%w: texture", ErrAllocation))
	}
	ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(opts.Unit))
	ctx.BindTexture(gl.TEXTURE_2D, fbo.Texture)
	ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	fbo.Depth = ctx.CreateRenderbuffer()
	if !fbo.Depth.Valid() {
		return fail(fmt.Errorf("%w: renderbuffer", ErrAllocation))
	}
	ctx.BindRenderbuffer(gl.RENDERBUFFER, fbo.Depth)
	ctx.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT16, w, h)
	ctx.BindFramebuffer(gl.FRAMEBUFFER, fbo.Framebuffer)
	ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fbo.Texture, 0)
	ctx.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fbo.Depth)
	if st := ctx.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		unbind(ctx)
		return fail(fmt.Errorf("%w: status %s", ErrFramebufferIncomplete, ctx.EnumString(st)))
	}
	unbind(ctx)
	return fbo, nil
}

func unbind(ctx *glctx.Context) {
	var (
		fb  gl.Framebuffer
		rb  gl.Renderbuffer
		tex gl.Texture
	)
	ctx.BindFramebuffer(gl.FRAMEBUFFER, fb)
	ctx.BindRenderbuffer(gl.RENDERBUFFER, rb)
	ctx.BindTexture(gl.TEXTURE_2D, tex)
}

// Bind makes the framebuffer the render target and sets the viewport
// to its size.
func (f *Framebuffer) Bind(ctx *glctx.Context) {
	ctx.BindFramebuffer(gl.FRAMEBUFFER, f.Framebuffer)
	ctx.Viewport(0, 0, f.Width, f.Height)
}

// Release deletes the objects of f that were allocated.
func (f *Framebuffer) Release(ctx *glctx.Context) {
	if f.Framebuffer.Valid() {
		ctx.DeleteFramebuffer(f.Framebuffer)
	}
	if f.Texture.Valid() {
		ctx.DeleteTexture(f.Texture)
	}
	if f.Depth.Valid() {
		ctx.DeleteRenderbuffer(f.Depth)
	}
	*f = Framebuffer{}
}
