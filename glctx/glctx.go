// SPDX-License-Identifier: Unlicense OR MIT

// Package glctx acquires graphics contexts from drawing surfaces and
// normalizes their optional extensions.
package glctx

import (
	"errors"
	"fmt"
	"log/slog"

	"glbind.org/internal/gl"
)

// Kind names a context type, in the vocabulary of canvas.getContext.
type Kind string

const (
	WebGL2            Kind = "webgl2"
	WebGL             Kind = "webgl"
	ExperimentalWebGL Kind = "experimental-webgl"
)

// ErrNoContext is returned when no context kind could be acquired.
var ErrNoContext = errors.New("glctx: no graphics context available")

// Options are the context creation attributes.
type Options struct {
	Alpha                 bool
	Depth                 bool
	Stencil               bool
	Antialias             bool
	PremultipliedAlpha    bool
	PreserveDrawingBuffer bool

	// SkipExtensions disables extension normalization.
	SkipExtensions bool
	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions match the WebGL context defaults.
func DefaultOptions() Options {
	return Options{
		Alpha:              true,
		Depth:              true,
		Antialias:          true,
		PremultipliedAlpha: true,
	}
}

// Surface is something a context can be created for, such as a
// canvas element or a window.
type Surface interface {
	// Context returns a context of the given kind, or an error if the
	// surface can't provide one.
	Context(kind Kind, opts Options) (gl.Functions, error)
}

// Context is a graphics context together with the constants and
// functions merged from its extensions.
type Context struct {
	gl.Functions
	Kind Kind
	Log  *slog.Logger

	version [2]int
	gles    bool

	core   map[string]gl.Enum
	consts map[string]gl.Enum
	funcs  map[string]gl.ExtFunc
	exts   map[string]gl.Extension
	enums  *enumTable
}

// New wraps an acquired context. Extensions are not normalized; use an
// Initializer for that.
func New(f gl.Functions, kind Kind, opts Options) *Context {
	c := &Context{
		Functions: f,
		Kind:      kind,
		Log:       opts.Logger,
		core:      f.Constants(),
		consts:    make(map[string]gl.Enum),
		funcs:     make(map[string]gl.ExtFunc),
		exts:      make(map[string]gl.Extension),
	}
	if c.Log == nil {
		c.Log = slog.Default()
	}
	ver, gles, err := gl.ParseGLVersion(f.GetString(gl.VERSION))
	if err != nil {
		c.Log.Warn("glctx: unknown context version", "err", err)
	}
	c.version, c.gles = ver, gles
	return c
}

// Version returns the OpenGL (ES) version of the context. WebGL 1 and
// 2 report ES 2.0 and 3.0.
func (c *Context) Version() (major, minor int, gles bool) {
	return c.version[0], c.version[1], c.gles
}

// Enum looks up a core or merged extension constant.
func (c *Context) Enum(name string) (gl.Enum, bool) {
	if v, ok := c.core[name]; ok {
		return v, true
	}
	v, ok := c.consts[name]
	return v, ok
}

// Func looks up a merged extension function by canonical name.
func (c *Context) Func(name string) (gl.ExtFunc, bool) {
	fn, ok := c.funcs[name]
	return fn, ok
}

// Call invokes a merged extension function.
func (c *Context) Call(name string, args ...interface{}) (interface{}, error) {
	fn, ok := c.funcs[name]
	if !ok {
		return nil, fmt.Errorf("glctx: no extension function %q", name)
	}
	return fn(args...), nil
}

// Extension returns a merged extension by its full name.
func (c *Context) Extension(name string) (gl.Extension, bool) {
	ext, ok := c.exts[name]
	return ext, ok
}

// VertexArrays reports whether vertex array objects are available.
func (c *Context) VertexArrays() bool {
	if c.version[0] >= 3 {
		return true
	}
	_, ok := c.funcs["createVertexArray"]
	return ok
}

// EnumString names a GL constant for diagnostics, for example
// "TEXTURE_2D" or "0x8b65" if unknown.
func (c *Context) EnumString(v gl.Enum) string {
	if c.enums == nil {
		c.enums = newEnumTable(c.core)
	}
	return c.enums.String(v)
}

func (c *Context) has(name string) bool {
	if _, ok := c.Enum(name); ok {
		return true
	}
	_, ok := c.funcs[name]
	return ok
}
