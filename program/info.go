// SPDX-License-Identifier: Unlicense OR MIT

package program

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
)

// ProgramInfo is a linked program with setters for its active
// attributes and uniforms.
type ProgramInfo struct {
	Program gl.Program
	// UniformSetters and AttribSetters are keyed by name, with any
	// "[0]" array suffix removed.
	UniformSetters map[string]*UniformSetter
	AttribSetters  map[string]*AttribSetter
	// Uniforms and Attribs list the setters in reflection order.
	Uniforms []*UniformSetter
	Attribs  []*AttribSetter
}

// AttribBinding describes how an attribute reads from a buffer. A zero
// Type means gl.FLOAT.
type AttribBinding struct {
	Buffer        gl.Buffer
	NumComponents int
	Type          gl.Enum
	Normalize     bool
	Stride        int
	Offset        int
}

// AttribSetter binds a buffer to one active attribute.
type AttribSetter struct {
	Name     string
	Location gl.Attrib
	Size     int
	GLType   gl.Enum

	f gl.Functions
}

// Set binds b.Buffer and points the attribute at it.
func (s *AttribSetter) Set(b AttribBinding) {
	ty := b.Type
	if ty == 0 {
		ty = gl.FLOAT
	}
	s.f.BindBuffer(gl.ARRAY_BUFFER, b.Buffer)
	s.f.EnableVertexAttribArray(s.Location)
	s.f.VertexAttribPointer(s.Location, b.NumComponents, ty, b.Normalize, b.Stride, b.Offset)
}

// CreateProgramInfo reflects the active attributes and uniforms of a
// linked program. Attributes without a location, such as built-ins,
// are skipped. Sampler uniforms are given consecutive texture units in
// reflection order, one per array element.
func CreateProgramInfo(ctx *glctx.Context, prog gl.Program) (*ProgramInfo, error) {
	pi := &ProgramInfo{
		Program:        prog,
		UniformSetters: make(map[string]*UniformSetter),
		AttribSetters:  make(map[string]*AttribSetter),
	}
	n := ctx.GetProgrami(prog, gl.ACTIVE_ATTRIBUTES)
	for i := 0; i < n; i++ {
		name, size, ty := ctx.GetActiveAttrib(prog, i)
		if name == "" {
			break
		}
		loc := ctx.GetAttribLocation(prog, name)
		if loc < 0 {
			continue
		}
		s := &AttribSetter{Name: name, Location: gl.Attrib(loc), Size: size, GLType: ty, f: ctx}
		pi.AttribSetters[name] = s
		pi.Attribs = append(pi.Attribs, s)
	}
	unit := 0
	n = ctx.GetProgrami(prog, gl.ACTIVE_UNIFORMS)
	for i := 0; i < n; i++ {
		name, size, ty := ctx.GetActiveUniform(prog, i)
		if name == "" {
			break
		}
		t, ok := ClassifyUniform(ty)
		if !ok {
			ctx.Log.Error("program: unsupported uniform type", "uniform", name, "type", ctx.EnumString(ty))
			return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedUniformType, name, ctx.EnumString(ty))
		}
		array := size > 1 && strings.HasSuffix(name, "[0]")
		loc := ctx.GetUniformLocation(prog, name)
		s := newUniformSetter(ctx, strings.TrimSuffix(name, "[0]"), loc, ty, t, array, size)
		if t.Sampler() {
			elems := 1
			if array {
				elems = size
			}
			for j := 0; j < elems; j++ {
				s.Units = append(s.Units, unit)
				unit++
			}
		}
		pi.UniformSetters[s.Name] = s
		pi.Uniforms = append(pi.Uniforms, s)
	}
	return pi, nil
}

// Use makes the program current.
func (p *ProgramInfo) Use(ctx *glctx.Context) {
	ctx.UseProgram(p.Program)
}

// Release deletes the program.
func (p *ProgramInfo) Release(ctx *glctx.Context) {
	ctx.DeleteProgram(p.Program)
}

// SetUniforms uploads values by uniform name, in name order. Names
// without an active uniform are ignored. The program must be current.
func SetUniforms(pi *ProgramInfo, values map[string]interface{}) error {
	names := maps.Keys(values)
	slices.Sort(names)
	for _, name := range names {
		s, ok := pi.UniformSetters[name]
		if !ok {
			continue
		}
		if err := s.Set(values[name]); err != nil {
			return err
		}
	}
	return nil
}

// SetAttributes binds buffers by attribute name, in name order. Names
// without an active attribute are ignored.
func SetAttributes(pi *ProgramInfo, bindings map[string]AttribBinding) {
	names := maps.Keys(bindings)
	slices.Sort(names)
	for _, name := range names {
		if s, ok := pi.AttribSetters[name]; ok {
			s.Set(bindings[name])
		}
	}
}
