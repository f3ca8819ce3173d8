// SPDX-License-Identifier: Unlicense OR MIT

// Package gl is a thin binding to the subset of WebGL and OpenGL (ES)
// needed by glbind. The js build talks to a WebGL rendering context
// through syscall/js, the other builds to a desktop OpenGL 3.3 context.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ACTIVE_ATTRIBUTES                         = 0x8b89
	ACTIVE_TEXTURE                            = 0x84e0
	ACTIVE_UNIFORMS                           = 0x8b86
	ARRAY_BUFFER                              = 0x8892
	BLEND                                     = 0xbe2
	BOOL                                      = 0x8b56
	BOOL_VEC2                                 = 0x8b57
	BOOL_VEC3                                 = 0x8b58
	BOOL_VEC4                                 = 0x8b59
	BYTE                                      = 0x1400
	CLAMP_TO_EDGE                             = 0x812f
	COLOR_ATTACHMENT0                         = 0x8ce0
	COLOR_BUFFER_BIT                          = 0x4000
	COMPILE_STATUS                            = 0x8b81
	CULL_FACE                                 = 0xb44
	DEPTH_ATTACHMENT                          = 0x8d00
	DEPTH_BUFFER_BIT                          = 0x100
	DEPTH_COMPONENT16                         = 0x81a5
	DEPTH_TEST                                = 0xb71
	DYNAMIC_DRAW                              = 0x88e8
	ELEMENT_ARRAY_BUFFER                      = 0x8893
	EXTENSIONS                                = 0x1f03
	FALSE                                     = 0
	FLOAT                                     = 0x1406
	FLOAT_MAT2                                = 0x8b5a
	FLOAT_MAT2x3                              = 0x8b65
	FLOAT_MAT3                                = 0x8b5b
	FLOAT_MAT4                                = 0x8b5c
	FLOAT_VEC2                                = 0x8b50
	FLOAT_VEC3                                = 0x8b51
	FLOAT_VEC4                                = 0x8b52
	FRAGMENT_SHADER                           = 0x8b30
	FRAMEBUFFER                               = 0x8d40
	FRAMEBUFFER_COMPLETE                      = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8cd6
	FRAMEBUFFER_INCOMPLETE_DIMENSIONS         = 0x8cd9
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8cd7
	FRAMEBUFFER_UNSUPPORTED                   = 0x8cdd
	INT                                       = 0x1404
	INT_VEC2                                  = 0x8b53
	INT_VEC3                                  = 0x8b54
	INT_VEC4                                  = 0x8b55
	LINEAR                                    = 0x2601
	LINEAR_MIPMAP_LINEAR                      = 0x2703
	LINES                                     = 0x1
	LINE_LOOP                                 = 0x2
	LINE_STRIP                                = 0x3
	LINK_STATUS                               = 0x8b82
	LUMINANCE                                 = 0x1909
	MIRRORED_REPEAT                           = 0x8370
	NEAREST                                   = 0x2600
	NO_ERROR                                  = 0x0
	NUM_EXTENSIONS                            = 0x821d
	POINTS                                    = 0x0
	RENDERBUFFER                              = 0x8d41
	REPEAT                                    = 0x2901
	RGB                                       = 0x1907
	RGBA                                      = 0x1908
	SAMPLER_2D                                = 0x8b5e
	SAMPLER_2D_SHADOW                         = 0x8b62
	SAMPLER_3D                                = 0x8b5f
	SAMPLER_CUBE                              = 0x8b60
	SHORT                                     = 0x1402
	STATIC_DRAW                               = 0x88e4
	TEXTURE_2D                                = 0xde1
	TEXTURE_CUBE_MAP                          = 0x8513
	TEXTURE_MAG_FILTER                        = 0x2800
	TEXTURE_MIN_FILTER                        = 0x2801
	TEXTURE_WRAP_S                            = 0x2802
	TEXTURE_WRAP_T                            = 0x2803
	TEXTURE0                                  = 0x84c0
	TRIANGLES                                 = 0x4
	TRIANGLE_FAN                              = 0x6
	TRIANGLE_STRIP                            = 0x5
	TRUE                                      = 1
	UNPACK_ALIGNMENT                          = 0xcf5
	UNPACK_FLIP_Y_WEBGL                       = 0x9240
	UNSIGNED_BYTE                             = 0x1401
	UNSIGNED_INT                              = 0x1405
	UNSIGNED_SHORT                            = 0x1403
	VERSION                                   = 0x1f02
	VERTEX_ARRAY_BINDING                      = 0x85b5
	VERTEX_SHADER                             = 0x8b31
	ZERO                                      = 0x0
)

// names maps the core constant names to their values. It is what
// Constants reports on builds that cannot enumerate a live context.
var names = map[string]Enum{
	"ACTIVE_ATTRIBUTES":                         ACTIVE_ATTRIBUTES,
	"ACTIVE_TEXTURE":                            ACTIVE_TEXTURE,
	"ACTIVE_UNIFORMS":                           ACTIVE_UNIFORMS,
	"ARRAY_BUFFER":                              ARRAY_BUFFER,
	"BLEND":                                     BLEND,
	"BOOL":                                      BOOL,
	"BOOL_VEC2":                                 BOOL_VEC2,
	"BOOL_VEC3":                                 BOOL_VEC3,
	"BOOL_VEC4":                                 BOOL_VEC4,
	"BYTE":                                      BYTE,
	"CLAMP_TO_EDGE":                             CLAMP_TO_EDGE,
	"COLOR_ATTACHMENT0":                         COLOR_ATTACHMENT0,
	"COLOR_BUFFER_BIT":                          COLOR_BUFFER_BIT,
	"COMPILE_STATUS":                            COMPILE_STATUS,
	"CULL_FACE":                                 CULL_FACE,
	"DEPTH_ATTACHMENT":                          DEPTH_ATTACHMENT,
	"DEPTH_BUFFER_BIT":                          DEPTH_BUFFER_BIT,
	"DEPTH_COMPONENT16":                         DEPTH_COMPONENT16,
	"DEPTH_TEST":                                DEPTH_TEST,
	"DYNAMIC_DRAW":                              DYNAMIC_DRAW,
	"ELEMENT_ARRAY_BUFFER":                      ELEMENT_ARRAY_BUFFER,
	"EXTENSIONS":                                EXTENSIONS,
	"FLOAT":                                     FLOAT,
	"FLOAT_MAT2":                                FLOAT_MAT2,
	"FLOAT_MAT2x3":                              FLOAT_MAT2x3,
	"FLOAT_MAT3":                                FLOAT_MAT3,
	"FLOAT_MAT4":                                FLOAT_MAT4,
	"FLOAT_VEC2":                                FLOAT_VEC2,
	"FLOAT_VEC3":                                FLOAT_VEC3,
	"FLOAT_VEC4":                                FLOAT_VEC4,
	"FRAGMENT_SHADER":                           FRAGMENT_SHADER,
	"FRAMEBUFFER":                               FRAMEBUFFER,
	"FRAMEBUFFER_COMPLETE":                      FRAMEBUFFER_COMPLETE,
	"FRAMEBUFFER_INCOMPLETE_ATTACHMENT":         FRAMEBUFFER_INCOMPLETE_ATTACHMENT,
	"FRAMEBUFFER_INCOMPLETE_DIMENSIONS":         FRAMEBUFFER_INCOMPLETE_DIMENSIONS,
	"FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT": FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT,
	"FRAMEBUFFER_UNSUPPORTED":                   FRAMEBUFFER_UNSUPPORTED,
	"INT":                                       INT,
	"INT_VEC2":                                  INT_VEC2,
	"INT_VEC3":                                  INT_VEC3,
	"INT_VEC4":                                  INT_VEC4,
	"LINEAR":                                    LINEAR,
	"LINEAR_MIPMAP_LINEAR":                      LINEAR_MIPMAP_LINEAR,
	"LINES":                                     LINES,
	"LINE_LOOP":                                 LINE_LOOP,
	"LINE_STRIP":                                LINE_STRIP,
	"LINK_STATUS":                               LINK_STATUS,
	"LUMINANCE":                                 LUMINANCE,
	"MIRRORED_REPEAT":                           MIRRORED_REPEAT,
	"NEAREST":                                   NEAREST,
	"NUM_EXTENSIONS":                            NUM_EXTENSIONS,
	"RENDERBUFFER":                              RENDERBUFFER,
	"REPEAT":                                    REPEAT,
	"RGB":                                       RGB,
	"RGBA":                                      RGBA,
	"SAMPLER_2D":                                SAMPLER_2D,
	"SAMPLER_2D_SHADOW":                         SAMPLER_2D_SHADOW,
	"SAMPLER_3D":                                SAMPLER_3D,
	"SAMPLER_CUBE":                              SAMPLER_CUBE,
	"SHORT":                                     SHORT,
	"STATIC_DRAW":                               STATIC_DRAW,
	"TEXTURE_2D":                                TEXTURE_2D,
	"TEXTURE_CUBE_MAP":                          TEXTURE_CUBE_MAP,
	"TEXTURE_MAG_FILTER":                        TEXTURE_MAG_FILTER,
	"TEXTURE_MIN_FILTER":                        TEXTURE_MIN_FILTER,
	"TEXTURE_WRAP_S":                            TEXTURE_WRAP_S,
	"TEXTURE_WRAP_T":                            TEXTURE_WRAP_T,
	"TEXTURE0":                                  TEXTURE0,
	"TRIANGLES":                                 TRIANGLES,
	"TRIANGLE_FAN":                              TRIANGLE_FAN,
	"TRIANGLE_STRIP":                            TRIANGLE_STRIP,
	"UNPACK_ALIGNMENT":                          UNPACK_ALIGNMENT,
	"UNSIGNED_BYTE":                             UNSIGNED_BYTE,
	"UNSIGNED_INT":                              UNSIGNED_INT,
	"UNSIGNED_SHORT":                            UNSIGNED_SHORT,
	"VERSION":                                   VERSION,
	"VERTEX_ARRAY_BINDING":                      VERTEX_ARRAY_BINDING,
	"VERTEX_SHADER":                             VERTEX_SHADER,
}

// CoreConstants returns a copy of the core constant table.
func CoreConstants() map[string]Enum {
	m := make(map[string]Enum, len(names))
	for k, v := range names {
		m[k] = v
	}
	return m
}
