// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Package gltest provides a recording implementation of gl.Functions
// for tests. It tracks live objects, records every call in order and
// can be told to fail object creation, shader compilation, program
// linking and framebuffer completeness.
package gltest

import (
	"fmt"
	"strings"

	"glbind.org/internal/gl"
)

// Call is a recorded GL call.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Active describes an active attribute or uniform reported by program
// reflection.
type Active struct {
	Name string
	Size int
	Type gl.Enum
	// Location is the attribute location. Uniform locations are
	// assigned from the enumeration index.
	Location int
}

// Functions is a fake gl.Functions.
type Functions struct {
	Calls []Call

	// Fail lists Create* methods that return an invalid handle.
	Fail map[string]bool
	// CompileLog makes compilation of the given stage fail with the log.
	CompileLog map[gl.Enum]string
	// LinkLog makes linking fail with the log.
	LinkLog string
	// Status is returned by CheckFramebufferStatus; zero means complete.
	Status gl.Enum

	Attribs  []Active
	Uniforms []Active

	Version    string
	Type       string
	Extensions map[string]gl.Extension
	// Consts overrides the core constant table.
	Consts map[string]gl.Enum

	next    uint
	live    map[string]map[uint]bool
	shaders map[uint]gl.Enum
}

var _ gl.Functions = (*Functions)(nil)

// New returns a fake WebGL 2 context.
func New() *Functions {
	return &Functions{
		Version: "WebGL 2.0",
		Type:    "WebGL2RenderingContext",
		Fail:    make(map[string]bool),
	}
}

func (f *Functions) record(name string, args ...interface{}) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Functions) create(kind, method string) uint {
	f.record(method)
	if f.Fail[method] {
		return 0
	}
	if f.live == nil {
		f.live = make(map[string]map[uint]bool)
	}
	if f.live[kind] == nil {
		f.live[kind] = make(map[uint]bool)
	}
	f.next++
	f.live[kind][f.next] = true
	return f.next
}

func (f *Functions) destroy(kind, method string, v uint) {
	f.record(method, v)
	delete(f.live[kind], v)
}

// Live returns the number of undeleted objects of a kind: "buffer",
// "framebuffer", "program", "renderbuffer", "shader", "texture" or
// "vertexarray".
func (f *Functions) Live(kind string) int {
	return len(f.live[kind])
}

// LiveTotal returns the number of undeleted objects of all kinds.
func (f *Functions) LiveTotal() int {
	n := 0
	for _, objs := range f.live {
		n += len(objs)
	}
	return n
}

// Named returns the recorded calls to method.
func (f *Functions) Named(method string) []Call {
	var calls []Call
	for _, c := range f.Calls {
		if c.Name == method {
			calls = append(calls, c)
		}
	}
	return calls
}

// Count returns the number of recorded calls to method.
func (f *Functions) Count(method string) int {
	return len(f.Named(method))
}

// Reset forgets the recorded calls.
func (f *Functions) Reset() {
	f.Calls = nil
}

func (f *Functions) ContextType() string {
	return f.Type
}

func (f *Functions) Constants() map[string]gl.Enum {
	if f.Consts != nil {
		return f.Consts
	}
	return gl.CoreConstants()
}

func (f *Functions) GetExtension(name string) (gl.Extension, bool) {
	f.record("GetExtension", name)
	ext, ok := f.Extensions[name]
	return ext, ok
}

func (f *Functions) ActiveTexture(t gl.Enum) {
	f.record("ActiveTexture", t)
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader", p.V, s.V)
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.record("BindAttribLocation", p.V, a, name)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer", target, b.V)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer", target, fb.V)
}

func (f *Functions) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	f.record("BindRenderbuffer", target, rb.V)
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture", target, t.V)
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	f.record("BindVertexArray", a.V)
}

func (f *Functions) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	f.record("BufferData", target, data, usage)
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	if f.Status != 0 {
		return f.Status
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *Functions) Clear(mask gl.Enum) {
	f.record("Clear", mask)
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.record("ClearColor", red, green, blue, alpha)
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.record("CompileShader", s.V)
}

func (f *Functions) CreateBuffer() gl.Buffer {
	return gl.Buffer{V: f.create("buffer", "CreateBuffer")}
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	return gl.Framebuffer{V: f.create("framebuffer", "CreateFramebuffer")}
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program{V: f.create("program", "CreateProgram")}
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	return gl.Renderbuffer{V: f.create("renderbuffer", "CreateRenderbuffer")}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	v := f.create("shader", "CreateShader")
	if v != 0 {
		if f.shaders == nil {
			f.shaders = make(map[uint]gl.Enum)
		}
		f.shaders[v] = ty
	}
	return gl.Shader{V: v}
}

func (f *Functions) CreateTexture() gl.Texture {
	return gl.Texture{V: f.create("texture", "CreateTexture")}
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	return gl.VertexArray{V: f.create("vertexarray", "CreateVertexArray")}
}

func (f *Functions) DeleteBuffer(v gl.Buffer) {
	f.destroy("buffer", "DeleteBuffer", v.V)
}

func (f *Functions) DeleteFramebuffer(v gl.Framebuffer) {
	f.destroy("framebuffer", "DeleteFramebuffer", v.V)
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.destroy("program", "DeleteProgram", p.V)
}

func (f *Functions) DeleteRenderbuffer(v gl.Renderbuffer) {
	f.destroy("renderbuffer", "DeleteRenderbuffer", v.V)
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.destroy("shader", "DeleteShader", s.V)
}

func (f *Functions) DeleteTexture(v gl.Texture) {
	f.destroy("texture", "DeleteTexture", v.V)
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	f.destroy("vertexarray", "DeleteVertexArray", a.V)
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements", mode, count, ty, offset)
}

func (f *Functions) Enable(cap gl.Enum) {
	f.record("Enable", cap)
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray", a)
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget gl.Enum, renderbuffer gl.Renderbuffer) {
	f.record("FramebufferRenderbuffer", target, attachment, renderbuffertarget, renderbuffer.V)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, t.V, level)
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	f.record("GenerateMipmap", target)
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveAttrib", p.V, index)
	if index >= len(f.Attribs) {
		return "", 0, 0
	}
	a := f.Attribs[index]
	return a.Name, a.Size, a.Type
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveUniform", p.V, index)
	if index >= len(f.Uniforms) {
		return "", 0, 0
	}
	u := f.Uniforms[index]
	return u.Name, u.Size, u.Type
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	f.record("GetAttribLocation", p.V, name)
	for _, a := range f.Attribs {
		if a.Name == name {
			return a.Location
		}
	}
	return -1
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.record("GetProgrami", p.V, pname)
	switch pname {
	case gl.LINK_STATUS:
		if f.LinkLog != "" {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.ACTIVE_ATTRIBUTES:
		return len(f.Attribs)
	case gl.ACTIVE_UNIFORMS:
		return len(f.Uniforms)
	}
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.record("GetProgramInfoLog", p.V)
	return f.LinkLog
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.record("GetShaderi", s.V, pname)
	if pname == gl.COMPILE_STATUS {
		if _, fail := f.CompileLog[f.shaders[s.V]]; fail {
			return gl.FALSE
		}
		return gl.TRUE
	}
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.record("GetShaderInfoLog", s.V)
	return f.CompileLog[f.shaders[s.V]]
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.record("GetString", pname)
	if pname == gl.VERSION {
		return f.Version
	}
	return ""
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation", p.V, name)
	for i, u := range f.Uniforms {
		if u.Name == name || strings.TrimSuffix(u.Name, "[0]") == name {
			return gl.Uniform{V: i}
		}
	}
	return gl.Uniform{V: -1}
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.record("LinkProgram", p.V)
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	f.record("PixelStorei", pname, param)
}

func (f *Functions) RenderbufferStorage(target, internalformat gl.Enum, width, height int) {
	f.record("RenderbufferStorage", target, internalformat, width, height)
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.record("ShaderSource", s.V, src)
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, pixels []byte) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty, pixels)
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	f.record("Uniform1f", dst.V, v)
}

func (f *Functions) Uniform1fv(dst gl.Uniform, v []float32) {
	f.record("Uniform1fv", dst.V, v)
}

func (f *Functions) Uniform2fv(dst gl.Uniform, v []float32) {
	f.record("Uniform2fv", dst.V, v)
}

func (f *Functions) Uniform3fv(dst gl.Uniform, v []float32) {
	f.record("Uniform3fv", dst.V, v)
}

func (f *Functions) Uniform4fv(dst gl.Uniform, v []float32) {
	f.record("Uniform4fv", dst.V, v)
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.record("Uniform1i", dst.V, v)
}

func (f *Functions) Uniform1iv(dst gl.Uniform, v []int32) {
	f.record("Uniform1iv", dst.V, v)
}

func (f *Functions) Uniform2iv(dst gl.Uniform, v []int32) {
	f.record("Uniform2iv", dst.V, v)
}

func (f *Functions) Uniform3iv(dst gl.Uniform, v []int32) {
	f.record("Uniform3iv", dst.V, v)
}

func (f *Functions) Uniform4iv(dst gl.Uniform, v []int32) {
	f.record("Uniform4iv", dst.V, v)
}

func (f *Functions) UniformMatrix2fv(dst gl.Uniform, transpose bool, v []float32) {
	f.record("UniformMatrix2fv", dst.V, transpose, v)
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, transpose bool, v []float32) {
	f.record("UniformMatrix3fv", dst.V, transpose, v)
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	f.record("UniformMatrix4fv", dst.V, transpose, v)
}

func (f *Functions) UseProgram(p gl.Program) {
	f.record("UseProgram", p.V)
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
}
