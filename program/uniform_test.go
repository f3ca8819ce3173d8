// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package program

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glbind.org/internal/gl"
	"glbind.org/internal/gltest"
)

var ident4 = mgl32.Ident4()

func reflectUniforms(t *testing.T, uniforms ...gltest.Active) (*ProgramInfo, *gltest.Functions) {
	t.Helper()
	ctx, f := newContext(t)
	f.Uniforms = uniforms
	pi, err := NewProgramInfo(ctx, vsrc, fsrc)
	require.NoError(t, err)
	f.Reset()
	return pi, f
}

func TestUniformUploadCalls(t *testing.T) {
	tests := []struct {
		name   string
		active gltest.Active
		value  interface{}
		call   string
		args   []interface{}
	}{
		{"float", gltest.Active{Name: "u", Size: 1, Type: gl.FLOAT}, float32(0.5), "Uniform1f", []interface{}{0, float32(0.5)}},
		{"float array", gltest.Active{Name: "u[0]", Size: 3, Type: gl.FLOAT}, []float32{1, 2, 3}, "Uniform1fv", []interface{}{0, []float32{1, 2, 3}}},
		{"vec2", gltest.Active{Name: "u", Size: 1, Type: gl.FLOAT_VEC2}, mgl32.Vec2{1, 2}, "Uniform2fv", []interface{}{0, []float32{1, 2}}},
		{"vec3", gltest.Active{Name: "u", Size: 1, Type: gl.FLOAT_VEC3}, []float64{1, 2, 3}, "Uniform3fv", []interface{}{0, []float32{1, 2, 3}}},
		{"vec4", gltest.Active{Name: "u", Size: 1, Type: gl.FLOAT_VEC4}, mgl32.Vec4{1, 0, 0, 1}, "Uniform4fv", []interface{}{0, []float32{1, 0, 0, 1}}},
		{"int", gltest.Active{Name: "u", Size: 1, Type: gl.INT}, 7, "Uniform1i", []interface{}{0, 7}},
		{"int array", gltest.Active{Name: "u[0]", Size: 2, Type: gl.INT}, []int{4, 5}, "Uniform1iv", []interface{}{0, []int32{4, 5}}},
		{"ivec3", gltest.Active{Name: "u", Size: 1, Type: gl.INT_VEC3}, []int32{1, 2, 3}, "Uniform3iv", []interface{}{0, []int32{1, 2, 3}}},
		{"bool", gltest.Active{Name: "u", Size: 1, Type: gl.BOOL}, true, "Uniform1iv", []interface{}{0, []int32{1}}},
		{"bvec2", gltest.Active{Name: "u", Size: 1, Type: gl.BOOL_VEC2}, []bool{false, true}, "Uniform2iv", []interface{}{0, []int32{0, 1}}},
		{"mat2", gltest.Active{Name: "u", Size: 1, Type: gl.FLOAT_MAT2}, mgl32.Ident2(), "UniformMatrix2fv", []interface{}{0, false, []float32{1, 0, 0, 1}}},
		{"mat4", gltest.Active{Name: "u", Size: 1, Type: gl.FLOAT_MAT4}, mgl32.Ident4(), "UniformMatrix4fv", []interface{}{0, false, ident4[:]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi, f := reflectUniforms(t, tt.active)
			require.NoError(t, SetUniforms(pi, map[string]interface{}{"u": tt.value}))
			require.Len(t, f.Calls, 1, "one upload call per invocation")
			assert.Equal(t, tt.call, f.Calls[0].Name)
			assert.Equal(t, tt.args, f.Calls[0].Args)
		})
	}
}

func TestUniformArrayNames(t *testing.T) {
	pi, _ := reflectUniforms(t,
		gltest.Active{Name: "u_lights[0]", Size: 4, Type: gl.FLOAT_VEC3},
		gltest.Active{Name: "u_single[0]", Size: 1, Type: gl.FLOAT},
	)
	lights := pi.UniformSetters["u_lights"]
	require.NotNil(t, lights)
	assert.True(t, lights.Array)
	assert.Equal(t, 4, lights.Len)
	single := pi.UniformSetters["u_single"]
	require.NotNil(t, single)
	assert.False(t, single.Array)
}

func TestSamplerUnits(t *testing.T) {
	pi, f := reflectUniforms(t,
		gltest.Active{Name: "u_diffuse", Size: 1, Type: gl.SAMPLER_2D},
		gltest.Active{Name: "u_color", Size: 1, Type: gl.FLOAT_VEC4},
		gltest.Active{Name: "u_layers[0]", Size: 3, Type: gl.SAMPLER_2D},
		gltest.Active{Name: "u_env", Size: 1, Type: gl.SAMPLER_CUBE},
	)
	assert.Equal(t, []int{0}, pi.UniformSetters["u_diffuse"].Units)
	assert.Equal(t, []int{1, 2, 3}, pi.UniformSetters["u_layers"].Units)
	assert.Equal(t, []int{4}, pi.UniformSetters["u_env"].Units)
	assert.Empty(t, pi.UniformSetters["u_color"].Units)

	require.NoError(t, pi.UniformSetters["u_diffuse"].Set(gl.Texture{V: 9}))
	assert.Equal(t, []gltest.Call{
		{Name: "Uniform1i", Args: []interface{}{0, 0}},
		{Name: "ActiveTexture", Args: []interface{}{gl.Enum(gl.TEXTURE0)}},
		{Name: "BindTexture", Args: []interface{}{gl.Enum(gl.TEXTURE_2D), uint(9)}},
	}, f.Calls)

	f.Reset()
	require.NoError(t, pi.UniformSetters["u_env"].Set(gl.Texture{V: 3}))
	assert.Equal(t, []interface{}{gl.Enum(gl.TEXTURE0 + 4)}, f.Calls[1].Args)
	assert.Equal(t, []interface{}{gl.Enum(gl.TEXTURE_CUBE_MAP), uint(3)}, f.Calls[2].Args)

	f.Reset()
	texs := []gl.Texture{{V: 5}, {V: 6}, {V: 7}}
	require.NoError(t, pi.UniformSetters["u_layers"].Set(texs))
	require.Len(t, f.Calls, 7)
	assert.Equal(t, gltest.Call{Name: "Uniform1iv", Args: []interface{}{2, []int32{1, 2, 3}}}, f.Calls[0])
	assert.Equal(t, 3, f.Count("BindTexture"))
	assert.Equal(t, []interface{}{gl.Enum(gl.TEXTURE0 + 3)}, f.Calls[5].Args)
}

func TestUniformValueMismatch(t *testing.T) {
	pi, f := reflectUniforms(t,
		gltest.Active{Name: "u_vec", Size: 1, Type: gl.FLOAT_VEC3},
		gltest.Active{Name: "u_tex", Size: 1, Type: gl.SAMPLER_2D},
		gltest.Active{Name: "u_flag", Size: 1, Type: gl.BOOL},
	)
	vec := pi.UniformSetters["u_vec"]
	assert.ErrorIs(t, vec.SetFloat32(1, 2), ErrUniformValue)
	assert.ErrorIs(t, vec.SetInt32(1, 2, 3), ErrUniformValue)
	assert.ErrorIs(t, vec.Set("red"), ErrUniformValue)
	assert.ErrorIs(t, pi.UniformSetters["u_tex"].SetFloat32(1), ErrUniformValue)
	assert.ErrorIs(t, pi.UniformSetters["u_tex"].SetTextures(), ErrUniformValue)
	assert.ErrorIs(t, pi.UniformSetters["u_flag"].Set(1.5), ErrUniformValue)
	assert.Empty(t, f.Calls)

	require.NoError(t, pi.UniformSetters["u_flag"].SetBool(true))
	assert.Equal(t, "Uniform1iv", f.Calls[0].Name)
}

func TestUniformValueCount(t *testing.T) {
	pi, f := reflectUniforms(t,
		gltest.Active{Name: "u_time", Size: 1, Type: gl.FLOAT},
		gltest.Active{Name: "u_mvp", Size: 1, Type: gl.FLOAT_MAT4},
		gltest.Active{Name: "u_weights[0]", Size: 3, Type: gl.FLOAT},
		gltest.Active{Name: "u_offsets[0]", Size: 2, Type: gl.FLOAT_VEC2},
	)
	tests := map[string]struct {
		name   string
		values []float32
	}{
		"extra scalar values":   {"u_time", []float32{1, 2, 3}},
		"two matrices":          {"u_mvp", make([]float32, 32)},
		"array overflow":        {"u_weights", []float32{1, 2, 3, 4, 5, 6}},
		"partial array vector":  {"u_offsets", []float32{1, 2, 3}},
		"vector array overflow": {"u_offsets", []float32{1, 2, 3, 4, 5, 6}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, pi.UniformSetters[tt.name].SetFloat32(tt.values...), ErrUniformValue)
		})
	}
	assert.ErrorIs(t, pi.UniformSetters["u_time"].Set([]float64{1, 2}), ErrUniformValue)
	assert.Empty(t, f.Calls)

	require.NoError(t, pi.UniformSetters["u_time"].SetFloat32(1))
	require.NoError(t, pi.UniformSetters["u_weights"].SetFloat32(1, 2, 3))
	require.NoError(t, pi.UniformSetters["u_weights"].SetFloat32(1, 2))
	require.NoError(t, pi.UniformSetters["u_offsets"].SetFloat32(1, 2, 3, 4))
	assert.Len(t, f.Calls, 4)
}

func TestSetUniformsIgnoresUnknownNames(t *testing.T) {
	pi, f := reflectUniforms(t, gltest.Active{Name: "u_time", Size: 1, Type: gl.FLOAT})
	err := SetUniforms(pi, map[string]interface{}{"u_time": 1.0, "u_missing": 2.0})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Count("Uniform1f"))
}

func TestAttribSetters(t *testing.T) {
	ctx, f := newContext(t)
	f.Attribs = []gltest.Active{
		{Name: "gl_VertexID", Size: 1, Type: gl.INT, Location: -1},
		{Name: "position", Size: 1, Type: gl.FLOAT_VEC3, Location: 0},
		{Name: "color", Size: 1, Type: gl.FLOAT_VEC4, Location: 3},
	}
	pi, err := NewProgramInfo(ctx, vsrc, fsrc)
	require.NoError(t, err)
	assert.NotContains(t, pi.AttribSetters, "gl_VertexID")
	require.Len(t, pi.Attribs, 2)

	f.Reset()
	SetAttributes(pi, map[string]AttribBinding{
		"color":    {Buffer: gl.Buffer{V: 11}, NumComponents: 4, Type: gl.UNSIGNED_BYTE, Normalize: true},
		"position": {Buffer: gl.Buffer{V: 10}, NumComponents: 3},
		"unused":   {Buffer: gl.Buffer{V: 12}, NumComponents: 2},
	})
	assert.Equal(t, []gltest.Call{
		{Name: "BindBuffer", Args: []interface{}{gl.Enum(gl.ARRAY_BUFFER), uint(11)}},
		{Name: "EnableVertexAttribArray", Args: []interface{}{gl.Attrib(3)}},
		{Name: "VertexAttribPointer", Args: []interface{}{gl.Attrib(3), 4, gl.Enum(gl.UNSIGNED_BYTE), true, 0, 0}},
		{Name: "BindBuffer", Args: []interface{}{gl.Enum(gl.ARRAY_BUFFER), uint(10)}},
		{Name: "EnableVertexAttribArray", Args: []interface{}{gl.Attrib(0)}},
		{Name: "VertexAttribPointer", Args: []interface{}{gl.Attrib(0), 3, gl.Enum(gl.FLOAT), false, 0, 0}},
	}, f.Calls)
}
