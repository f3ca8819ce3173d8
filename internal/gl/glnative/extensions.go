// SPDX-License-Identifier: Unlicense OR MIT

package glnative

import (
	glb "glbind.org/internal/gl"
)

// extDesc describes how a WebGL extension maps onto desktop OpenGL.
type extDesc struct {
	// core is set for extensions promoted to core in OpenGL 3.3.
	core bool
	// native lists the desktop extension strings that provide it.
	native []string
	consts []glb.ExtMember
	funcs  func(f *Functions) []glb.ExtMember
}

func (d extDesc) members(f *Functions) []glb.ExtMember {
	m := append([]glb.ExtMember(nil), d.consts...)
	if d.funcs != nil {
		m = append(m, d.funcs(f)...)
	}
	return m
}

var extensions = map[string]extDesc{
	"ANGLE_instanced_arrays": {
		core:   true,
		consts: []glb.ExtMember{{Key: "VERTEX_ATTRIB_ARRAY_DIVISOR_ANGLE", Value: 0x88fe}},
	},
	"EXT_blend_minmax": {
		core:   true,
		consts: []glb.ExtMember{{Key: "MIN_EXT", Value: 0x8007}, {Key: "MAX_EXT", Value: 0x8008}},
	},
	"EXT_color_buffer_float": {core: true},
	"EXT_frag_depth":         {core: true},
	"EXT_sRGB": {
		core: true,
		consts: []glb.ExtMember{
			{Key: "SRGB_EXT", Value: 0x8c40},
			{Key: "SRGB_ALPHA_EXT", Value: 0x8c42},
			{Key: "SRGB8_ALPHA8_EXT", Value: 0x8c43},
		},
	},
	"EXT_shader_texture_lod": {core: true},
	"EXT_texture_filter_anisotropic": {
		native: []string{"GL_EXT_texture_filter_anisotropic", "GL_ARB_texture_filter_anisotropic"},
		consts: []glb.ExtMember{
			{Key: "TEXTURE_MAX_ANISOTROPY_EXT", Value: 0x84fe},
			{Key: "MAX_TEXTURE_MAX_ANISOTROPY_EXT", Value: 0x84ff},
		},
	},
	"OES_element_index_uint":   {core: true},
	"OES_standard_derivatives": {core: true, consts: []glb.ExtMember{{Key: "FRAGMENT_SHADER_DERIVATIVE_HINT_OES", Value: 0x8b8b}}},
	"OES_texture_float":        {core: true},
	"OES_texture_float_linear": {core: true},
	"OES_texture_half_float": {
		core:   true,
		consts: []glb.ExtMember{{Key: "HALF_FLOAT_OES", Value: 0x8d61}},
	},
	"OES_texture_half_float_linear": {core: true},
	"OES_vertex_array_object": {
		core:   true,
		consts: []glb.ExtMember{{Key: "VERTEX_ARRAY_BINDING_OES", Value: glb.VERTEX_ARRAY_BINDING}},
		funcs: func(f *Functions) []glb.ExtMember {
			return []glb.ExtMember{
				{Key: "createVertexArrayOES", Func: func(...interface{}) interface{} {
					return f.CreateVertexArray()
				}},
				{Key: "bindVertexArrayOES", Func: func(args ...interface{}) interface{} {
					f.BindVertexArray(args[0].(glb.VertexArray))
					return nil
				}},
				{Key: "deleteVertexArrayOES", Func: func(args ...interface{}) interface{} {
					f.DeleteVertexArray(args[0].(glb.VertexArray))
					return nil
				}},
			}
		},
	},
	"WEBGL_color_buffer_float": {core: true},
	"WEBGL_compressed_texture_s3tc": {
		native: []string{"GL_EXT_texture_compression_s3tc"},
		consts: []glb.ExtMember{
			{Key: "COMPRESSED_RGB_S3TC_DXT1_EXT", Value: 0x83f0},
			{Key: "COMPRESSED_RGBA_S3TC_DXT1_EXT", Value: 0x83f1},
			{Key: "COMPRESSED_RGBA_S3TC_DXT3_EXT", Value: 0x83f2},
			{Key: "COMPRESSED_RGBA_S3TC_DXT5_EXT", Value: 0x83f3},
		},
	},
	"WEBGL_depth_texture": {
		core:   true,
		consts: []glb.ExtMember{{Key: "UNSIGNED_INT_24_8_WEBGL", Value: 0x84fa}},
	},
	"WEBGL_draw_buffers": {
		core: true,
		consts: []glb.ExtMember{
			{Key: "MAX_COLOR_ATTACHMENTS_WEBGL", Value: 0x8cdf},
			{Key: "MAX_DRAW_BUFFERS_WEBGL", Value: 0x8824},
		},
	},
}
