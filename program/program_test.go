// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package program

import (
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"gioui.org/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
	"glbind.org/internal/gltest"
)

const (
	vsrc = "attribute vec4 position; void main() { gl_Position = position; }"
	fsrc = "precision mediump float; void main() { gl_FragColor = vec4(1); }"
)

func newContext(t *testing.T) (*glctx.Context, *gltest.Functions) {
	t.Helper()
	f := gltest.New()
	ctx := glctx.New(f, glctx.WebGL2, glctx.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	f.Reset()
	return ctx, f
}

func TestLink(t *testing.T) {
	ctx, f := newContext(t)
	prog, err := Link(ctx, vsrc, fsrc, "position", "", "uv")
	require.NoError(t, err)
	assert.True(t, prog.Valid())
	assert.Equal(t, 1, f.Live("program"))
	assert.Equal(t, 0, f.Live("shader"), "shaders are flagged for deletion after linking")

	binds := f.Named("BindAttribLocation")
	require.Len(t, binds, 2)
	assert.Equal(t, []interface{}{prog.V, gl.Attrib(0), "position"}, binds[0].Args)
	assert.Equal(t, []interface{}{prog.V, gl.Attrib(2), "uv"}, binds[1].Args)
}

func TestLinkVertexCompileFailure(t *testing.T) {
	ctx, f := newContext(t)
	f.CompileLog = map[gl.Enum]string{gl.VERTEX_SHADER: "ERROR: 0:1: syntax error\x00"}
	_, err := Link(ctx, vsrc, fsrc)
	require.ErrorIs(t, err, ErrCompile)
	assert.Contains(t, err.Error(), "syntax error")
	assert.Equal(t, 0, f.Count("CreateProgram"))
	assert.Equal(t, 0, f.Count("LinkProgram"))
	assert.Equal(t, 0, f.LiveTotal())
}

func TestLinkFragmentCompileFailure(t *testing.T) {
	ctx, f := newContext(t)
	f.CompileLog = map[gl.Enum]string{gl.FRAGMENT_SHADER: "bad fragment"}
	_, err := Link(ctx, vsrc, fsrc)
	require.ErrorIs(t, err, ErrCompile)
	assert.Equal(t, 0, f.Count("LinkProgram"))
	assert.Equal(t, 0, f.LiveTotal(), "the compiled vertex shader is deleted")
}

func TestLinkFailure(t *testing.T) {
	ctx, f := newContext(t)
	f.LinkLog = "varying mismatch"
	_, err := Link(ctx, vsrc, fsrc)
	require.ErrorIs(t, err, ErrLink)
	assert.Contains(t, err.Error(), "varying mismatch")
	assert.Equal(t, 0, f.LiveTotal())
}

func TestLinkCreateShaderFailure(t *testing.T) {
	ctx, f := newContext(t)
	f.Fail["CreateShader"] = true
	_, err := Link(ctx, vsrc, fsrc)
	require.ErrorIs(t, err, ErrCompile)
	assert.Equal(t, 0, f.Count("CreateProgram"))
}

func TestLinkElements(t *testing.T) {
	elems := ElementMap{
		"vs":    {Type: "x-shader/x-vertex", Text: vsrc},
		"fs":    {Type: "x-shader/x-fragment", Text: fsrc},
		"other": {Type: "text/javascript", Text: "x = 1"},
	}
	t.Run("order independent", func(t *testing.T) {
		ctx, f := newContext(t)
		_, err := LinkElements(ctx, elems, "fs", "other", "vs")
		require.NoError(t, err)
		srcs := f.Named("ShaderSource")
		require.Len(t, srcs, 2)
		assert.Equal(t, vsrc, srcs[0].Args[1])
		assert.Equal(t, fsrc, srcs[1].Args[1])
	})
	t.Run("missing fragment", func(t *testing.T) {
		ctx, f := newContext(t)
		_, err := LinkElements(ctx, elems, "vs", "other", "nope")
		require.ErrorIs(t, err, ErrMissingShaderSource)
		assert.Empty(t, f.Calls, "no GL call is made")
	})
	t.Run("missing vertex", func(t *testing.T) {
		ctx, f := newContext(t)
		_, err := LinkElements(ctx, elems, "fs")
		require.ErrorIs(t, err, ErrMissingShaderSource)
		assert.Empty(t, f.Calls)
	})
}

func TestLinkElementsFS(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/quad.vert": {Data: []byte(vsrc)},
		"shaders/quad.frag": {Data: []byte(fsrc)},
		"shaders/README":    {Data: []byte("docs")},
	}
	ctx, f := newContext(t)
	_, err := LinkElements(ctx, FS{FS: fsys}, "shaders/quad.vert", "shaders/quad.frag", "shaders/README")
	require.NoError(t, err)
	assert.Equal(t, 1, f.Live("program"))
}

func TestLinkSources(t *testing.T) {
	vs := shader.Sources{
		Name:      "quad.vert",
		GLSL100ES: "#version 100\n" + vsrc,
		GLSL150:   "#version 150\n" + vsrc,
		Inputs: []shader.InputLocation{
			{Name: "uv", Location: 1},
			{Name: "pos", Location: 0},
		},
	}
	fs := shader.Sources{
		Name:      "quad.frag",
		GLSL100ES: "#version 100\n" + fsrc,
		GLSL150:   "#version 150\n" + fsrc,
	}

	t.Run("webgl", func(t *testing.T) {
		ctx, f := newContext(t)
		_, err := LinkSources(ctx, vs, fs)
		require.NoError(t, err)
		assert.Equal(t, vs.GLSL100ES, f.Named("ShaderSource")[0].Args[1])
		binds := f.Named("BindAttribLocation")
		require.Len(t, binds, 2)
		assert.Equal(t, "pos", binds[0].Args[2])
		assert.Equal(t, "uv", binds[1].Args[2])
	})
	t.Run("desktop", func(t *testing.T) {
		f := gltest.New()
		f.Version = "3.3.0 NVIDIA 535.54"
		ctx := glctx.New(f, glctx.WebGL2, glctx.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
		_, err := LinkSources(ctx, vs, fs)
		require.NoError(t, err)
		assert.Equal(t, vs.GLSL150, f.Named("ShaderSource")[0].Args[1])
	})
	t.Run("no source", func(t *testing.T) {
		ctx, f := newContext(t)
		_, err := LinkSources(ctx, shader.Sources{Name: "empty"}, fs)
		require.ErrorIs(t, err, ErrMissingShaderSource)
		assert.Empty(t, f.Calls)
	})
}

func TestNewProgramInfoUnsupportedUniform(t *testing.T) {
	ctx, f := newContext(t)
	f.Uniforms = []gltest.Active{
		{Name: "u_color", Size: 1, Type: gl.FLOAT_VEC4},
		{Name: "u_shadow", Size: 1, Type: gl.SAMPLER_2D_SHADOW},
	}
	_, err := NewProgramInfo(ctx, vsrc, fsrc)
	require.ErrorIs(t, err, ErrUnsupportedUniformType)
	assert.Contains(t, err.Error(), "u_shadow")
	assert.Equal(t, 0, f.Live("program"))
}

func TestNewProgramInfoFromElements(t *testing.T) {
	ctx, f := newContext(t)
	f.Attribs = []gltest.Active{{Name: "position", Size: 1, Type: gl.FLOAT_VEC4, Location: 0}}
	elems := ElementMap{
		"vs": {Type: "x-shader/x-vertex", Text: vsrc},
		"fs": {Type: "x-shader/x-fragment", Text: fsrc},
	}
	pi, err := NewProgramInfoFromElements(ctx, elems, "vs", "fs")
	require.NoError(t, err)
	assert.Contains(t, pi.AttribSetters, "position")
	pi.Release(ctx)
	assert.Equal(t, 0, f.LiveTotal())
}
