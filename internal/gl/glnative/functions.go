// SPDX-License-Identifier: Unlicense OR MIT

// Package glnative implements gl.Functions on a desktop OpenGL 3.3
// context through github.com/go-gl/gl.
package glnative

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	glb "glbind.org/internal/gl"
)

// Functions binds the current OpenGL context. It must be created and
// used on the thread owning the context.
type Functions struct {
	version [2]int
	exts    []string
}

// New loads the GL entry points for the current context.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glnative: %w", err)
	}
	f := new(Functions)
	ver, _, err := glb.ParseGLVersion(f.GetString(glb.VERSION))
	if err != nil {
		return nil, err
	}
	if ver[0] < 3 {
		return nil, errors.New("glnative: OpenGL 3.0 or newer required")
	}
	f.version = ver
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := 0; i < int(n); i++ {
		f.exts = append(f.exts, gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))))
	}
	return f, nil
}

func (f *Functions) ContextType() string {
	return fmt.Sprintf("OpenGL%d.%d", f.version[0], f.version[1])
}

func (f *Functions) Constants() map[string]glb.Enum {
	return glb.CoreConstants()
}

func (f *Functions) GetExtension(name string) (glb.Extension, bool) {
	desc, ok := extensions[name]
	if !ok {
		return nil, false
	}
	if !desc.core && !f.hasAny(desc.native) {
		return nil, false
	}
	return &glb.StaticExtension{ExtName: name, ExtMembers: desc.members(f)}, true
}

func (f *Functions) hasAny(names []string) bool {
	for _, n := range names {
		for _, e := range f.exts {
			if e == n {
				return true
			}
		}
	}
	return false
}

func (f *Functions) ActiveTexture(t glb.Enum) {
	gl.ActiveTexture(uint32(t))
}

func (f *Functions) AttachShader(p glb.Program, s glb.Shader) {
	gl.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) BindAttribLocation(p glb.Program, a glb.Attrib, name string) {
	cname, free := cString(name)
	defer free()
	gl.BindAttribLocation(uint32(p.V), uint32(a), cname)
}

func (f *Functions) BindBuffer(target glb.Enum, b glb.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindFramebuffer(target glb.Enum, fb glb.Framebuffer) {
	gl.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) BindRenderbuffer(target glb.Enum, rb glb.Renderbuffer) {
	gl.BindRenderbuffer(uint32(target), uint32(rb.V))
}

func (f *Functions) BindTexture(target glb.Enum, t glb.Texture) {
	gl.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) BindVertexArray(a glb.VertexArray) {
	gl.BindVertexArray(uint32(a.V))
}

func (f *Functions) BufferData(target glb.Enum, data []byte, usage glb.Enum) {
	gl.BufferData(uint32(target), len(data), bytesPtr(data), uint32(usage))
}

func (f *Functions) CheckFramebufferStatus(target glb.Enum) glb.Enum {
	return glb.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (f *Functions) Clear(mask glb.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *Functions) CompileShader(s glb.Shader) {
	gl.CompileShader(uint32(s.V))
}

func (f *Functions) CreateBuffer() glb.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return glb.Buffer{V: uint(b)}
}

func (f *Functions) CreateFramebuffer() glb.Framebuffer {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return glb.Framebuffer{V: uint(fb)}
}

func (f *Functions) CreateProgram() glb.Program {
	return glb.Program{V: uint(gl.CreateProgram())}
}

func (f *Functions) CreateRenderbuffer() glb.Renderbuffer {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return glb.Renderbuffer{V: uint(rb)}
}

func (f *Functions) CreateShader(ty glb.Enum) glb.Shader {
	return glb.Shader{V: uint(gl.CreateShader(uint32(ty)))}
}

func (f *Functions) CreateTexture() glb.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return glb.Texture{V: uint(t)}
}

func (f *Functions) CreateVertexArray() glb.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return glb.VertexArray{V: uint(a)}
}

func (f *Functions) DeleteBuffer(v glb.Buffer) {
	b := uint32(v.V)
	gl.DeleteBuffers(1, &b)
}

func (f *Functions) DeleteFramebuffer(v glb.Framebuffer) {
	fb := uint32(v.V)
	gl.DeleteFramebuffers(1, &fb)
}

func (f *Functions) DeleteProgram(p glb.Program) {
	gl.DeleteProgram(uint32(p.V))
}

func (f *Functions) DeleteRenderbuffer(v glb.Renderbuffer) {
	rb := uint32(v.V)
	gl.DeleteRenderbuffers(1, &rb)
}

func (f *Functions) DeleteShader(s glb.Shader) {
	gl.DeleteShader(uint32(s.V))
}

func (f *Functions) DeleteTexture(v glb.Texture) {
	t := uint32(v.V)
	gl.DeleteTextures(1, &t)
}

func (f *Functions) DeleteVertexArray(a glb.VertexArray) {
	va := uint32(a.V)
	gl.DeleteVertexArrays(1, &va)
}

func (f *Functions) DrawArrays(mode glb.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) DrawElements(mode glb.Enum, count int, ty glb.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}

func (f *Functions) Enable(cap glb.Enum) {
	gl.Enable(uint32(cap))
}

func (f *Functions) EnableVertexAttribArray(a glb.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget glb.Enum, renderbuffer glb.Renderbuffer) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(renderbuffertarget), uint32(renderbuffer.V))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget glb.Enum, t glb.Texture, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) GenerateMipmap(target glb.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (f *Functions) GetActiveAttrib(p glb.Program, index int) (string, int, glb.Enum) {
	var (
		length int32
		size   int32
		ty     uint32
		name   [256]uint8
	)
	gl.GetActiveAttrib(uint32(p.V), uint32(index), int32(len(name)), &length, &size, &ty, &name[0])
	return string(name[:length]), int(size), glb.Enum(ty)
}

func (f *Functions) GetActiveUniform(p glb.Program, index int) (string, int, glb.Enum) {
	var (
		length int32
		size   int32
		ty     uint32
		name   [256]uint8
	)
	gl.GetActiveUniform(uint32(p.V), uint32(index), int32(len(name)), &length, &size, &ty, &name[0])
	return string(name[:length]), int(size), glb.Enum(ty)
}

func (f *Functions) GetAttribLocation(p glb.Program, name string) int {
	cname, free := cString(name)
	defer free()
	return int(gl.GetAttribLocation(uint32(p.V), cname))
}

func (f *Functions) GetProgrami(p glb.Program, pname glb.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p glb.Program) string {
	n := f.GetProgrami(p, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	gl.GetProgramInfoLog(uint32(p.V), int32(len(buf)), nil, &buf[0])
	return gl.GoStr(&buf[0])
}

func (f *Functions) GetShaderi(s glb.Shader, pname glb.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s glb.Shader) string {
	n := f.GetShaderi(s, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	gl.GetShaderInfoLog(uint32(s.V), int32(len(buf)), nil, &buf[0])
	return gl.GoStr(&buf[0])
}

func (f *Functions) GetString(pname glb.Enum) string {
	if pname == glb.EXTENSIONS {
		return strings.Join(f.exts, " ")
	}
	return gl.GoStr(gl.GetString(uint32(pname)))
}

func (f *Functions) GetUniformLocation(p glb.Program, name string) glb.Uniform {
	cname, free := cString(name)
	defer free()
	return glb.Uniform{V: int(gl.GetUniformLocation(uint32(p.V), cname))}
}

func (f *Functions) LinkProgram(p glb.Program) {
	gl.LinkProgram(uint32(p.V))
}

func (f *Functions) PixelStorei(pname glb.Enum, param int) {
	if pname == glb.UNPACK_FLIP_Y_WEBGL {
		// WebGL only; callers flip the pixels themselves.
		return
	}
	gl.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) RenderbufferStorage(target, internalformat glb.Enum, width, height int) {
	gl.RenderbufferStorage(uint32(target), uint32(internalformat), int32(width), int32(height))
}

func (f *Functions) ShaderSource(s glb.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(uint32(s.V), 1, csources, nil)
}

func (f *Functions) TexImage2D(target glb.Enum, level int, internalFormat glb.Enum, width, height int, format, ty glb.Enum, pixels []byte) {
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), bytesPtr(pixels))
}

func (f *Functions) TexParameteri(target, pname glb.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) Uniform1f(dst glb.Uniform, v float32) {
	gl.Uniform1f(int32(dst.V), v)
}

func (f *Functions) Uniform1fv(dst glb.Uniform, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(int32(dst.V), int32(len(v)), &v[0])
	}
}

func (f *Functions) Uniform2fv(dst glb.Uniform, v []float32) {
	if len(v) >= 2 {
		gl.Uniform2fv(int32(dst.V), int32(len(v)/2), &v[0])
	}
}

func (f *Functions) Uniform3fv(dst glb.Uniform, v []float32) {
	if len(v) >= 3 {
		gl.Uniform3fv(int32(dst.V), int32(len(v)/3), &v[0])
	}
}

func (f *Functions) Uniform4fv(dst glb.Uniform, v []float32) {
	if len(v) >= 4 {
		gl.Uniform4fv(int32(dst.V), int32(len(v)/4), &v[0])
	}
}

func (f *Functions) Uniform1i(dst glb.Uniform, v int) {
	gl.Uniform1i(int32(dst.V), int32(v))
}

func (f *Functions) Uniform1iv(dst glb.Uniform, v []int32) {
	if len(v) > 0 {
		gl.Uniform1iv(int32(dst.V), int32(len(v)), &v[0])
	}
}

func (f *Functions) Uniform2iv(dst glb.Uniform, v []int32) {
	if len(v) >= 2 {
		gl.Uniform2iv(int32(dst.V), int32(len(v)/2), &v[0])
	}
}

func (f *Functions) Uniform3iv(dst glb.Uniform, v []int32) {
	if len(v) >= 3 {
		gl.Uniform3iv(int32(dst.V), int32(len(v)/3), &v[0])
	}
}

func (f *Functions) Uniform4iv(dst glb.Uniform, v []int32) {
	if len(v) >= 4 {
		gl.Uniform4iv(int32(dst.V), int32(len(v)/4), &v[0])
	}
}

func (f *Functions) UniformMatrix2fv(dst glb.Uniform, transpose bool, v []float32) {
	if len(v) >= 4 {
		gl.UniformMatrix2fv(int32(dst.V), int32(len(v)/4), transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix3fv(dst glb.Uniform, transpose bool, v []float32) {
	if len(v) >= 9 {
		gl.UniformMatrix3fv(int32(dst.V), int32(len(v)/9), transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix4fv(dst glb.Uniform, transpose bool, v []float32) {
	if len(v) >= 16 {
		gl.UniformMatrix4fv(int32(dst.V), int32(len(v)/16), transpose, &v[0])
	}
}

func (f *Functions) UseProgram(p glb.Program) {
	gl.UseProgram(uint32(p.V))
}

func (f *Functions) VertexAttribPointer(dst glb.Attrib, size int, ty glb.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func cString(s string) (*uint8, func()) {
	cstrs, free := gl.Strs(s + "\x00")
	return *cstrs, free
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}
