// SPDX-License-Identifier: Unlicense OR MIT

// Package program compiles and links shader programs and reflects
// their active attributes and uniforms into typed setters.
package program

import (
	"errors"
	"fmt"
	"strings"

	"gioui.org/shader"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
)

var (
	ErrCompile                = errors.New("program: shader compilation failed")
	ErrLink                   = errors.New("program: program link failed")
	ErrMissingShaderSource    = errors.New("program: missing shader source")
	ErrUnsupportedUniformType = errors.New("program: unsupported uniform type")
)

// CompileShader compiles src for stage, gl.VERTEX_SHADER or
// gl.FRAGMENT_SHADER. On failure the shader is deleted and the
// compiler log is returned in the error.
func CompileShader(ctx *glctx.Context, stage gl.Enum, src string) (gl.Shader, error) {
	sh := ctx.CreateShader(stage)
	if !sh.Valid() {
		ctx.Log.Error("program: unable to create shader", "stage", ctx.EnumString(stage))
		return sh, fmt.Errorf("%w: glCreateShader failed", ErrCompile)
	}
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := gl.TrimInfoLog(ctx.GetShaderInfoLog(sh))
		ctx.DeleteShader(sh)
		ctx.Log.Error("program: failed to compile shader", "stage", ctx.EnumString(stage), "log", log)
		var zero gl.Shader
		return zero, fmt.Errorf("%w: %s: %s", ErrCompile, ctx.EnumString(stage), log)
	}
	return sh, nil
}

// Link compiles both stages and links them. Attribute names, if any,
// are bound to locations 0, 1, ... before linking. Nothing is linked
// if a stage fails to compile, and no shader or program object
// survives a failure.
func Link(ctx *glctx.Context, vsrc, fsrc string, attribs ...string) (gl.Program, error) {
	var zero gl.Program
	vs, err := CompileShader(ctx, gl.VERTEX_SHADER, vsrc)
	if err != nil {
		return zero, err
	}
	fs, err := CompileShader(ctx, gl.FRAGMENT_SHADER, fsrc)
	if err != nil {
		ctx.DeleteShader(vs)
		return zero, err
	}
	prog := ctx.CreateProgram()
	if !prog.Valid() {
		ctx.DeleteShader(vs)
		ctx.DeleteShader(fs)
		return zero, fmt.Errorf("%w: glCreateProgram failed", ErrLink)
	}
	ctx.AttachShader(prog, vs)
	ctx.AttachShader(prog, fs)
	for i, a := range attribs {
		if a != "" {
			ctx.BindAttribLocation(prog, gl.Attrib(i), a)
		}
	}
	ctx.LinkProgram(prog)
	if ctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		log := gl.TrimInfoLog(ctx.GetProgramInfoLog(prog))
		ctx.DeleteProgram(prog)
		ctx.DeleteShader(fs)
		ctx.DeleteShader(vs)
		ctx.Log.Error("program: failed to link program", "log", log)
		return zero, fmt.Errorf("%w: %s", ErrLink, log)
	}
	// The attached shaders are freed with the program.
	ctx.DeleteShader(vs)
	ctx.DeleteShader(fs)
	return prog, nil
}

// LinkElements links the vertex and fragment sources found among the
// named elements. Each element is classified by its type marker; if
// either stage is missing no GL call is made.
func LinkElements(ctx *glctx.Context, elems Elements, ids ...string) (gl.Program, error) {
	vsrc, fsrc, err := resolve(elems, ids)
	if err != nil {
		ctx.Log.Error("program: shader source not found", "ids", strings.Join(ids, ","), "err", err)
		var zero gl.Program
		return zero, err
	}
	return Link(ctx, vsrc, fsrc)
}

func resolve(elems Elements, ids []string) (vsrc, fsrc string, err error) {
	var hasVert, hasFrag bool
	for _, id := range ids {
		el, ok := elems.Element(id)
		if !ok {
			continue
		}
		switch {
		case strings.Contains(el.Type, "vert"):
			vsrc, hasVert = el.Text, true
		case strings.Contains(el.Type, "frag"):
			fsrc, hasFrag = el.Text, true
		}
	}
	if !hasVert {
		return "", "", fmt.Errorf("%w: no vertex shader among %q", ErrMissingShaderSource, ids)
	}
	if !hasFrag {
		return "", "", fmt.Errorf("%w: no fragment shader among %q", ErrMissingShaderSource, ids)
	}
	return vsrc, fsrc, nil
}

// LinkSources links precompiled shader sources, picking the GLSL
// dialect for the context and binding the vertex inputs to their
// declared locations so programs sharing inputs share a layout.
func LinkSources(ctx *glctx.Context, vs, fs shader.Sources) (gl.Program, error) {
	vsrc, fsrc := vs.GLSL100ES, fs.GLSL100ES
	if major, _, gles := ctx.Version(); !gles && major >= 3 {
		// OpenGL 3.2 Core only accepts glsl 1.50 or newer.
		vsrc, fsrc = vs.GLSL150, fs.GLSL150
	}
	if vsrc == "" || fsrc == "" {
		var zero gl.Program
		return zero, fmt.Errorf("%w: %s/%s has no source for this context", ErrMissingShaderSource, vs.Name, fs.Name)
	}
	attribs := make([]string, len(vs.Inputs))
	for _, inp := range vs.Inputs {
		if inp.Location >= 0 && inp.Location < len(attribs) {
			attribs[inp.Location] = inp.Name
		}
	}
	return Link(ctx, vsrc, fsrc, attribs...)
}

// NewProgramInfo links a program from source and reflects it.
func NewProgramInfo(ctx *glctx.Context, vsrc, fsrc string, attribs ...string) (*ProgramInfo, error) {
	prog, err := Link(ctx, vsrc, fsrc, attribs...)
	if err != nil {
		return nil, err
	}
	return newInfoOrDelete(ctx, prog)
}

// NewProgramInfoFromElements links a program from named elements and
// reflects it.
func NewProgramInfoFromElements(ctx *glctx.Context, elems Elements, ids ...string) (*ProgramInfo, error) {
	prog, err := LinkElements(ctx, elems, ids...)
	if err != nil {
		return nil, err
	}
	return newInfoOrDelete(ctx, prog)
}

func newInfoOrDelete(ctx *glctx.Context, prog gl.Program) (*ProgramInfo, error) {
	pi, err := CreateProgramInfo(ctx, prog)
	if err != nil {
		ctx.DeleteProgram(prog)
		return nil, err
	}
	return pi, nil
}
