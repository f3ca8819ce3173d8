// SPDX-License-Identifier: Unlicense OR MIT

package program

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glbind.org/internal/gl"
)

// ErrUniformValue is returned when a value doesn't fit a uniform.
var ErrUniformValue = errors.New("program: value does not match uniform")

// Kind is the shape of a uniform.
type Kind uint8

const (
	Scalar Kind = iota
	Vector
	Matrix
	Sampler2D
	SamplerCube
)

// Base is the component type of a uniform.
type Base uint8

const (
	Float Base = iota
	Int
	Bool
)

// UniformType classifies a GL uniform type. Dim is the component count
// of scalars and vectors and the column count of square matrices.
type UniformType struct {
	Kind Kind
	Base Base
	Dim  int
}

// uniformTypes is the closed set of supported uniform types.
var uniformTypes = map[gl.Enum]UniformType{
	gl.FLOAT:        {Scalar, Float, 1},
	gl.FLOAT_VEC2:   {Vector, Float, 2},
	gl.FLOAT_VEC3:   {Vector, Float, 3},
	gl.FLOAT_VEC4:   {Vector, Float, 4},
	gl.INT:          {Scalar, Int, 1},
	gl.INT_VEC2:     {Vector, Int, 2},
	gl.INT_VEC3:     {Vector, Int, 3},
	gl.INT_VEC4:     {Vector, Int, 4},
	gl.BOOL:         {Scalar, Bool, 1},
	gl.BOOL_VEC2:    {Vector, Bool, 2},
	gl.BOOL_VEC3:    {Vector, Bool, 3},
	gl.BOOL_VEC4:    {Vector, Bool, 4},
	gl.FLOAT_MAT2:   {Matrix, Float, 2},
	gl.FLOAT_MAT3:   {Matrix, Float, 3},
	gl.FLOAT_MAT4:   {Matrix, Float, 4},
	gl.SAMPLER_2D:   {Sampler2D, Int, 1},
	gl.SAMPLER_CUBE: {SamplerCube, Int, 1},
}

// ClassifyUniform returns the UniformType of a GL type, or false if the
// type is not supported.
func ClassifyUniform(ty gl.Enum) (UniformType, bool) {
	t, ok := uniformTypes[ty]
	return t, ok
}

// Sampler reports whether the type is a sampler.
func (t UniformType) Sampler() bool {
	return t.Kind == Sampler2D || t.Kind == SamplerCube
}

// Components returns the number of values of one element.
func (t UniformType) Components() int {
	if t.Kind == Matrix {
		return t.Dim * t.Dim
	}
	return t.Dim
}

// bindPoint returns the texture target of a sampler.
func (t UniformType) bindPoint() gl.Enum {
	if t.Kind == SamplerCube {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}

// UniformSetter uploads values to one active uniform.
type UniformSetter struct {
	// Name is the uniform name without any "[0]" suffix.
	Name     string
	Location gl.Uniform
	GLType   gl.Enum
	Type     UniformType
	// Array is set for uniform arrays of more than one element, and
	// Len is their declared length.
	Array bool
	Len   int
	// Units are the texture units of a sampler, one per element.
	Units []int

	f      gl.Functions
	upload func(v value)
}

// value is a uniform value converted to upload form.
type value struct {
	floats   []float32
	ints     []int32
	textures []gl.Texture
}

func newUniformSetter(f gl.Functions, name string, loc gl.Uniform, glType gl.Enum, t UniformType, array bool, size int) *UniformSetter {
	s := &UniformSetter{Name: name, Location: loc, GLType: glType, Type: t, Array: array, Len: size, f: f}
	switch t.Kind {
	case Scalar:
		switch {
		case t.Base == Float && array:
			s.upload = func(v value) { f.Uniform1fv(loc, v.floats) }
		case t.Base == Float:
			s.upload = func(v value) { f.Uniform1f(loc, v.floats[0]) }
		case t.Base == Int && !array:
			s.upload = func(v value) { f.Uniform1i(loc, int(v.ints[0])) }
		default:
			// Int arrays and every bool.
			s.upload = func(v value) { f.Uniform1iv(loc, v.ints) }
		}
	case Vector:
		if t.Base == Float {
			fv := [...]func(gl.Uniform, []float32){2: f.Uniform2fv, 3: f.Uniform3fv, 4: f.Uniform4fv}[t.Dim]
			s.upload = func(v value) { fv(loc, v.floats) }
		} else {
			iv := [...]func(gl.Uniform, []int32){2: f.Uniform2iv, 3: f.Uniform3iv, 4: f.Uniform4iv}[t.Dim]
			s.upload = func(v value) { iv(loc, v.ints) }
		}
	case Matrix:
		mv := [...]func(gl.Uniform, bool, []float32){2: f.UniformMatrix2fv, 3: f.UniformMatrix3fv, 4: f.UniformMatrix4fv}[t.Dim]
		s.upload = func(v value) { mv(loc, false, v.floats) }
	case Sampler2D, SamplerCube:
		s.upload = s.bindTextures
	}
	return s
}

func (s *UniformSetter) bindTextures(v value) {
	if s.Array {
		units := make([]int32, len(s.Units))
		for i, u := range s.Units {
			units[i] = int32(u)
		}
		s.f.Uniform1iv(s.Location, units)
	} else {
		s.f.Uniform1i(s.Location, s.Units[0])
	}
	bp := s.Type.bindPoint()
	for i, tex := range v.textures {
		if i >= len(s.Units) {
			break
		}
		s.f.ActiveTexture(gl.TEXTURE0 + gl.Enum(s.Units[i]))
		s.f.BindTexture(bp, tex)
	}
}

// SetFloat32 uploads float values to a float uniform.
func (s *UniformSetter) SetFloat32(v ...float32) error {
	if s.Type.Base != Float || s.Type.Sampler() {
		return s.mismatch("float values")
	}
	return s.set(value{floats: v}, len(v))
}

// SetInt32 uploads integer values to an int or bool uniform.
func (s *UniformSetter) SetInt32(v ...int32) error {
	if s.Type.Base == Float || s.Type.Sampler() {
		return s.mismatch("int values")
	}
	return s.set(value{ints: v}, len(v))
}

// SetBool uploads bool values to a bool uniform.
func (s *UniformSetter) SetBool(v ...bool) error {
	if s.Type.Base != Bool {
		return s.mismatch("bool values")
	}
	return s.set(value{ints: boolInts(v)}, len(v))
}

// SetTextures binds textures to the units of a sampler uniform.
func (s *UniformSetter) SetTextures(t ...gl.Texture) error {
	if !s.Type.Sampler() {
		return s.mismatch("textures")
	}
	if len(t) == 0 {
		return fmt.Errorf("%w: %s: no textures", ErrUniformValue, s.Name)
	}
	s.upload(value{textures: t})
	return nil
}

// Set converts v to the uniform's type and uploads it. Accepted values
// are numbers, bools, slices of them, mgl32 vectors and matrices,
// textures and texture slices.
func (s *UniformSetter) Set(v interface{}) error {
	switch {
	case s.Type.Sampler():
		switch t := v.(type) {
		case gl.Texture:
			return s.SetTextures(t)
		case []gl.Texture:
			return s.SetTextures(t...)
		}
		return s.mismatch(fmt.Sprintf("%T", v))
	case s.Type.Base == Float:
		f, ok := toFloats(v)
		if !ok {
			return s.mismatch(fmt.Sprintf("%T", v))
		}
		return s.SetFloat32(f...)
	default:
		i, ok := toInts(v)
		if !ok {
			return s.mismatch(fmt.Sprintf("%T", v))
		}
		return s.set(value{ints: i}, len(i))
	}
}

// set uploads v after checking its n values against the uniform shape.
// Arrays accept up to Len elements; everything else exactly one.
func (s *UniformSetter) set(v value, n int) error {
	c := s.Type.Components()
	if !s.Array {
		if n != c {
			return fmt.Errorf("%w: %s needs %d values, got %d", ErrUniformValue, s.Name, c, n)
		}
		s.upload(v)
		return nil
	}
	if n == 0 || n%c != 0 {
		return fmt.Errorf("%w: %s needs a multiple of %d values, got %d", ErrUniformValue, s.Name, c, n)
	}
	if n/c > s.Len {
		return fmt.Errorf("%w: %s holds %d elements, got %d", ErrUniformValue, s.Name, s.Len, n/c)
	}
	s.upload(v)
	return nil
}

func (s *UniformSetter) mismatch(got string) error {
	return fmt.Errorf("%w: %s does not accept %s", ErrUniformValue, s.Name, got)
}

func toFloats(v interface{}) ([]float32, bool) {
	switch v := v.(type) {
	case float32:
		return []float32{v}, true
	case float64:
		return []float32{float32(v)}, true
	case int:
		return []float32{float32(v)}, true
	case []float32:
		return v, true
	case []float64:
		f := make([]float32, len(v))
		for i, x := range v {
			f[i] = float32(x)
		}
		return f, true
	case mgl32.Vec2:
		return v[:], true
	case mgl32.Vec3:
		return v[:], true
	case mgl32.Vec4:
		return v[:], true
	case mgl32.Mat2:
		return v[:], true
	case mgl32.Mat3:
		return v[:], true
	case mgl32.Mat4:
		return v[:], true
	}
	return nil, false
}

func toInts(v interface{}) ([]int32, bool) {
	switch v := v.(type) {
	case int:
		return []int32{int32(v)}, true
	case int32:
		return []int32{v}, true
	case bool:
		return boolInts([]bool{v}), true
	case []int32:
		return v, true
	case []int:
		i := make([]int32, len(v))
		for j, x := range v {
			i[j] = int32(x)
		}
		return i, true
	case []bool:
		return boolInts(v), true
	}
	return nil, false
}

func boolInts(v []bool) []int32 {
	i := make([]int32, len(v))
	for j, b := range v {
		if b {
			i[j] = 1
		}
	}
	return i
}
