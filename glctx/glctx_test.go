// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glctx

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glbind.org/internal/gl"
	"glbind.org/internal/gltest"
)

// surface provides fake contexts for some kinds.
type surface struct {
	kinds map[Kind]*gltest.Functions
	tried []Kind
}

func (s *surface) Context(kind Kind, opts Options) (gl.Functions, error) {
	s.tried = append(s.tried, kind)
	f, ok := s.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%s unavailable", kind)
	}
	return f, nil
}

func quietOptions() Options {
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

func webgl1() *gltest.Functions {
	f := gltest.New()
	f.Version = "WebGL 1.0"
	f.Type = "WebGLRenderingContext"
	return f
}

// vaoExtension mimics OES_vertex_array_object, whose functions must be
// called on the extension object.
func vaoExtension(calls *[]string) gl.Extension {
	fn := func(name string) gl.ExtFunc {
		return func(args ...interface{}) interface{} {
			*calls = append(*calls, name)
			return name
		}
	}
	return &gl.StaticExtension{
		ExtName: "OES_vertex_array_object",
		ExtMembers: []gl.ExtMember{
			{Key: "VERTEX_ARRAY_BINDING_OES", Value: gl.VERTEX_ARRAY_BINDING},
			{Key: "bindVertexArrayOES", Func: fn("bindVertexArrayOES")},
			{Key: "createVertexArrayOES", Func: fn("createVertexArrayOES")},
			{Key: "deleteVertexArrayOES", Func: fn("deleteVertexArrayOES")},
		},
	}
}

func TestAcquireOrder(t *testing.T) {
	f := webgl1()
	s := &surface{kinds: map[Kind]*gltest.Functions{ExperimentalWebGL: f, WebGL2: gltest.New()}}
	c, err := NewInitializer().Acquire(s, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, ExperimentalWebGL, c.Kind)
	assert.Equal(t, []Kind{WebGL, ExperimentalWebGL}, s.tried, "acquire never asks for webgl2")
}

func TestCreatePrefersWebGL2(t *testing.T) {
	s := &surface{kinds: map[Kind]*gltest.Functions{WebGL: webgl1(), WebGL2: gltest.New()}}
	c, err := NewInitializer().Create(s, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, WebGL2, c.Kind)
	major, minor, gles := c.Version()
	assert.Equal(t, [3]interface{}{3, 0, true}, [3]interface{}{major, minor, gles})
	assert.True(t, c.VertexArrays())
}

func TestNoContext(t *testing.T) {
	s := &surface{}
	_, err := NewInitializer().Create(s, quietOptions())
	require.ErrorIs(t, err, ErrNoContext)
	assert.Contains(t, err.Error(), "experimental-webgl unavailable")
	assert.Len(t, s.tried, 3)
}

func TestNormalize(t *testing.T) {
	var calls []string
	f := webgl1()
	f.Extensions = map[string]gl.Extension{"OES_vertex_array_object": vaoExtension(&calls)}
	s := &surface{kinds: map[Kind]*gltest.Functions{WebGL: f}}
	in := NewInitializer()
	c, err := in.Acquire(s, quietOptions())
	require.NoError(t, err)

	assert.True(t, c.VertexArrays())
	res, err := c.Call("createVertexArray")
	require.NoError(t, err)
	assert.Equal(t, "createVertexArrayOES", res)
	assert.Equal(t, []string{"createVertexArrayOES"}, calls)
	_, ok := c.Func("bindVertexArray")
	assert.True(t, ok)
	_, err = c.Call("drawBuffers")
	assert.Error(t, err)

	v, ok := c.Enum("VERTEX_ARRAY_BINDING")
	require.True(t, ok)
	assert.Equal(t, gl.Enum(gl.VERTEX_ARRAY_BINDING), v)
	_, ok = c.Extension("OES_vertex_array_object")
	assert.True(t, ok)

	before := f.Count("GetExtension")
	assert.Equal(t, len(SupportedExtensions), before)
	in.Normalize(c)
	assert.Equal(t, before+len(SupportedExtensions)-1, f.Count("GetExtension"), "merged extensions are not requested again")
}

func TestNormalizeConflicts(t *testing.T) {
	var logs bytes.Buffer
	f := gltest.New()
	f.Extensions = map[string]gl.Extension{
		"EXT_texture_filter_anisotropic": &gl.StaticExtension{
			ExtName: "EXT_texture_filter_anisotropic",
			ExtMembers: []gl.ExtMember{
				{Key: "TEXTURE_MAX_ANISOTROPY_EXT", Value: 0x84fe},
				{Key: "TEXTURE_2D_EXT", Value: 0x1234},
				{Key: "LINEAR_EXT", Value: gl.LINEAR},
			},
		},
	}
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	c, err := NewInitializer().Create(&surface{kinds: map[Kind]*gltest.Functions{WebGL2: f}}, opts)
	require.NoError(t, err)

	v, ok := c.Enum("TEXTURE_MAX_ANISOTROPY")
	require.True(t, ok)
	assert.Equal(t, gl.Enum(0x84fe), v)
	v, _ = c.Enum("TEXTURE_2D")
	assert.Equal(t, gl.Enum(gl.TEXTURE_2D), v, "core constants win")
	assert.Contains(t, logs.String(), "TEXTURE_2D_EXT")
	assert.NotContains(t, logs.String(), "LINEAR_EXT", "equal values are not reported")
	assert.Equal(t, "TEXTURE_MAX_ANISOTROPY", c.EnumString(0x84fe))
}

func TestEnumTableSharedPerType(t *testing.T) {
	ext := &gl.StaticExtension{
		ExtName:    "EXT_texture_filter_anisotropic",
		ExtMembers: []gl.ExtMember{{Key: "TEXTURE_MAX_ANISOTROPY_EXT", Value: 0x84fe}},
	}
	f1 := gltest.New()
	f1.Extensions = map[string]gl.Extension{ext.ExtName: ext}
	f2 := gltest.New()
	in := NewInitializer()
	c1, err := in.Create(&surface{kinds: map[Kind]*gltest.Functions{WebGL2: f1}}, quietOptions())
	require.NoError(t, err)
	c2, err := in.Create(&surface{kinds: map[Kind]*gltest.Functions{WebGL2: f2}}, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, "TEXTURE_MAX_ANISOTROPY", c1.EnumString(0x84fe))
	assert.Equal(t, "TEXTURE_MAX_ANISOTROPY", c2.EnumString(0x84fe))
	_, ok := c2.Enum("TEXTURE_MAX_ANISOTROPY")
	assert.False(t, ok, "constants are only merged onto contexts providing them")
}

func TestSkipExtensions(t *testing.T) {
	f := gltest.New()
	opts := quietOptions()
	opts.SkipExtensions = true
	_, err := NewInitializer().Create(&surface{kinds: map[Kind]*gltest.Functions{WebGL2: f}}, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Count("GetExtension"))
}

func TestEnumString(t *testing.T) {
	f := gltest.New()
	f.Consts = map[string]gl.Enum{"ZERO": 0, "NO_ERROR": 0, "POINTS": 0, "TRIANGLES": gl.TRIANGLES}
	c := New(f, WebGL2, quietOptions())
	assert.Equal(t, "NO_ERROR | POINTS | ZERO", c.EnumString(0))
	assert.Equal(t, "TRIANGLES", c.EnumString(gl.TRIANGLES))
	assert.Equal(t, "0xbeef", c.EnumString(0xbeef))
}

func TestUnknownVersion(t *testing.T) {
	var logs bytes.Buffer
	f := gltest.New()
	f.Version = "garbage"
	c := New(f, WebGL2, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	major, _, _ := c.Version()
	assert.Equal(t, 0, major)
	assert.False(t, c.VertexArrays())
	assert.Contains(t, logs.String(), "unknown context version")
}
