// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"
)

// Functions is the set of GL entry points glbind issues. Implementations
// are bound to exactly one context and must only be called from the
// goroutine that owns it.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	BindBuffer(target Enum, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindRenderbuffer(target Enum, rb Renderbuffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BufferData(target Enum, data []byte, usage Enum)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateRenderbuffer() Renderbuffer
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	DeleteBuffer(v Buffer)
	DeleteFramebuffer(v Framebuffer)
	DeleteProgram(p Program)
	DeleteRenderbuffer(v Renderbuffer)
	DeleteShader(s Shader)
	DeleteTexture(v Texture)
	DeleteVertexArray(a VertexArray)
	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	GenerateMipmap(target Enum)
	GetActiveAttrib(p Program, index int) (name string, size int, ty Enum)
	GetActiveUniform(p Program, index int) (name string, size int, ty Enum)
	GetAttribLocation(p Program, name string) int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	RenderbufferStorage(target, internalformat Enum, width, height int)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, pixels []byte)
	TexParameteri(target, pname Enum, param int)
	Uniform1f(dst Uniform, v float32)
	Uniform1fv(dst Uniform, v []float32)
	Uniform2fv(dst Uniform, v []float32)
	Uniform3fv(dst Uniform, v []float32)
	Uniform4fv(dst Uniform, v []float32)
	Uniform1i(dst Uniform, v int)
	Uniform1iv(dst Uniform, v []int32)
	Uniform2iv(dst Uniform, v []int32)
	Uniform3iv(dst Uniform, v []int32)
	Uniform4iv(dst Uniform, v []int32)
	UniformMatrix2fv(dst Uniform, transpose bool, v []float32)
	UniformMatrix3fv(dst Uniform, transpose bool, v []float32)
	UniformMatrix4fv(dst Uniform, transpose bool, v []float32)
	UseProgram(p Program)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)

	// GetExtension returns the named extension, or false if the
	// context doesn't support it.
	GetExtension(name string) (Extension, bool)
	// Constants enumerates the constants the context exposes by name.
	Constants() map[string]Enum
	// ContextType names the concrete context implementation, for
	// example "WebGL2RenderingContext".
	ContextType() string
}

// ExtFunc is an extension function bound to its extension object.
type ExtFunc func(args ...interface{}) interface{}

// ExtMember is a single named constant or function of an extension.
type ExtMember struct {
	Key   string
	Value Enum
	Func  ExtFunc
}

// IsFunc reports whether the member is a function.
func (m ExtMember) IsFunc() bool {
	return m.Func != nil
}

// Extension is an acquired context extension.
type Extension interface {
	Name() string
	// Members lists the extension's constants and functions in a stable
	// order.
	Members() []ExtMember
}

// StaticExtension is an Extension with a fixed member list.
type StaticExtension struct {
	ExtName    string
	ExtMembers []ExtMember
}

func (e *StaticExtension) Name() string {
	return e.ExtName
}

func (e *StaticExtension) Members() []ExtMember {
	return e.ExtMembers
}

// ParseGLVersion parses the GL_VERSION string of a WebGL, OpenGL ES
// or desktop OpenGL context.
func ParseGLVersion(glVer string) (version [2]int, gles bool, err error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("failed to parse OpenGL ES version (%s)", glVer)
}

// TrimInfoLog cleans up a shader or program info log for display.
func TrimInfoLog(log string) string {
	return strings.TrimRight(strings.TrimSpace(log), "\x00")
}
