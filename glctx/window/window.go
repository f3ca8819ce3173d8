// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Package window provides a desktop glctx.Surface backed by a GLFW
// window. GLFW must be used from the main thread; callers lock it with
// runtime.LockOSThread before calling Init.
package window

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
	"glbind.org/internal/gl/glnative"
)

// hints maps context kinds to the desktop context requested for them.
var hints = map[glctx.Kind][]struct {
	hint  glfw.Hint
	value int
}{
	glctx.WebGL2: {
		{glfw.ContextVersionMajor, 3},
		{glfw.ContextVersionMinor, 3},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
	},
	glctx.WebGL: {
		{glfw.ContextVersionMajor, 3},
		{glfw.ContextVersionMinor, 2},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
	},
	glctx.ExperimentalWebGL: {
		{glfw.ContextVersionMajor, 3},
		{glfw.ContextVersionMinor, 0},
	},
}

// Window is a GLFW window whose context is created on demand.
type Window struct {
	Width, Height int
	Title         string

	win *glfw.Window
}

// Init initializes GLFW.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// Terminate releases GLFW.
func Terminate() {
	glfw.Terminate()
}

// PollEvents processes pending window events.
func PollEvents() {
	glfw.PollEvents()
}

// New returns a Window to be created by the first successful Context
// call.
func New(width, height int, title string) *Window {
	return &Window{Width: width, Height: height, Title: title}
}

// Context creates the window with a context matching kind and makes it
// current.
func (w *Window) Context(kind glctx.Kind, opts glctx.Options) (gl.Functions, error) {
	if w.win != nil {
		return nil, errors.New("window: context already created")
	}
	kh, ok := hints[kind]
	if !ok {
		return nil, fmt.Errorf("window: unsupported context kind %q", kind)
	}
	glfw.DefaultWindowHints()
	for _, h := range kh {
		glfw.WindowHint(h.hint, h.value)
	}
	glfw.WindowHint(glfw.AlphaBits, bits(opts.Alpha, 8))
	glfw.WindowHint(glfw.DepthBits, bits(opts.Depth, 24))
	glfw.WindowHint(glfw.StencilBits, bits(opts.Stencil, 8))
	glfw.WindowHint(glfw.Samples, bits(opts.Antialias, 4))
	win, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: %s context: %w", kind, err)
	}
	win.MakeContextCurrent()
	f, err := glnative.New()
	if err != nil {
		win.Destroy()
		return nil, err
	}
	w.win = win
	return f, nil
}

// GLFW returns the underlying window, or nil before Context succeeded.
func (w *Window) GLFW() *glfw.Window {
	return w.win
}

// Release destroys the window and its context.
func (w *Window) Release() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
}

func bits(enabled bool, n int) int {
	if enabled {
		return n
	}
	return 0
}
