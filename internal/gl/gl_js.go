// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"syscall/js"
)

// WebGL implements Functions on a WebGLRenderingContext or
// WebGL2RenderingContext.
type WebGL struct {
	Ctx js.Value

	// Cached reference to the Uint8Array JS type.
	uint8Array js.Value
	// Cached JS arrays.
	arrayBuf js.Value

	// vao is the OES_vertex_array_object extension on WebGL 1.
	vao      js.Value
	isWebGL2 bool
}

// NewWebGL wraps a rendering context returned by canvas.getContext.
func NewWebGL(ctx js.Value) *WebGL {
	f := &WebGL{
		Ctx:        ctx,
		uint8Array: js.Global().Get("Uint8Array"),
	}
	webgl2Class := js.Global().Get("WebGL2RenderingContext")
	f.isWebGL2 = !webgl2Class.IsUndefined() && ctx.InstanceOf(webgl2Class)
	if !f.isWebGL2 {
		f.vao = ctx.Call("getExtension", "OES_vertex_array_object")
	}
	return f
}

func (f *WebGL) ContextType() string {
	return f.Ctx.Get("constructor").Get("name").String()
}

func (f *WebGL) Constants() map[string]Enum {
	consts := make(map[string]Enum)
	eachProperty(f.Ctx, func(key string, v js.Value) {
		if v.Type() == js.TypeNumber {
			consts[key] = Enum(v.Int())
		}
	})
	return consts
}

func (f *WebGL) GetExtension(name string) (Extension, bool) {
	ext := f.Ctx.Call("getExtension", name)
	if !isObject(ext) {
		return nil, false
	}
	return &jsExtension{name: name, obj: ext}, true
}

// jsExtension enumerates the members of a WebGL extension object.
type jsExtension struct {
	name string
	obj  js.Value
}

func (e *jsExtension) Name() string {
	return e.name
}

func (e *jsExtension) Members() []ExtMember {
	var members []ExtMember
	eachProperty(e.obj, func(key string, v js.Value) {
		switch v.Type() {
		case js.TypeNumber:
			members = append(members, ExtMember{Key: key, Value: Enum(v.Int())})
		case js.TypeFunction:
			key := key
			members = append(members, ExtMember{Key: key, Func: func(args ...interface{}) interface{} {
				// Call through the extension object to keep it as receiver.
				return e.obj.Call(key, args...)
			}})
		}
	})
	return members
}

// eachProperty visits the properties of obj and its prototypes, the
// way a for-in loop would, without Object.prototype.
func eachProperty(obj js.Value, fn func(key string, v js.Value)) {
	object := js.Global().Get("Object")
	root := object.Get("prototype")
	seen := make(map[string]bool)
	for p := obj; isObject(p) && !p.Equal(root); p = object.Call("getPrototypeOf", p) {
		keys := object.Call("getOwnPropertyNames", p)
		for i := 0; i < keys.Length(); i++ {
			k := keys.Index(i).String()
			if seen[k] || k == "constructor" {
				continue
			}
			seen[k] = true
			fn(k, obj.Get(k))
		}
	}
}

func (f *WebGL) ActiveTexture(t Enum) {
	f.Ctx.Call("activeTexture", int(t))
}

func (f *WebGL) AttachShader(p Program, s Shader) {
	f.Ctx.Call("attachShader", js.Value(p), js.Value(s))
}

func (f *WebGL) BindAttribLocation(p Program, a Attrib, name string) {
	f.Ctx.Call("bindAttribLocation", js.Value(p), int(a), name)
}

func (f *WebGL) BindBuffer(target Enum, b Buffer) {
	f.Ctx.Call("bindBuffer", int(target), js.Value(b))
}

func (f *WebGL) BindFramebuffer(target Enum, fb Framebuffer) {
	f.Ctx.Call("bindFramebuffer", int(target), js.Value(fb))
}

func (f *WebGL) BindRenderbuffer(target Enum, rb Renderbuffer) {
	f.Ctx.Call("bindRenderbuffer", int(target), js.Value(rb))
}

func (f *WebGL) BindTexture(target Enum, t Texture) {
	f.Ctx.Call("bindTexture", int(target), js.Value(t))
}

func (f *WebGL) BindVertexArray(a VertexArray) {
	if f.isWebGL2 {
		f.Ctx.Call("bindVertexArray", js.Value(a))
	} else if isObject(f.vao) {
		f.vao.Call("bindVertexArrayOES", js.Value(a))
	}
}

func (f *WebGL) BufferData(target Enum, data []byte, usage Enum) {
	f.Ctx.Call("bufferData", int(target), f.byteArrayOf(data), int(usage))
}

func (f *WebGL) CheckFramebufferStatus(target Enum) Enum {
	return Enum(f.Ctx.Call("checkFramebufferStatus", int(target)).Int())
}

func (f *WebGL) Clear(mask Enum) {
	f.Ctx.Call("clear", int(mask))
}

func (f *WebGL) ClearColor(red, green, blue, alpha float32) {
	f.Ctx.Call("clearColor", red, green, blue, alpha)
}

func (f *WebGL) CompileShader(s Shader) {
	f.Ctx.Call("compileShader", js.Value(s))
}

func (f *WebGL) CreateBuffer() Buffer {
	return Buffer(f.Ctx.Call("createBuffer"))
}

func (f *WebGL) CreateFramebuffer() Framebuffer {
	return Framebuffer(f.Ctx.Call("createFramebuffer"))
}

func (f *WebGL) CreateProgram() Program {
	return Program(f.Ctx.Call("createProgram"))
}

func (f *WebGL) CreateRenderbuffer() Renderbuffer {
	return Renderbuffer(f.Ctx.Call("createRenderbuffer"))
}

func (f *WebGL) CreateShader(ty Enum) Shader {
	return Shader(f.Ctx.Call("createShader", int(ty)))
}

func (f *WebGL) CreateTexture() Texture {
	return Texture(f.Ctx.Call("createTexture"))
}

func (f *WebGL) CreateVertexArray() VertexArray {
	switch {
	case f.isWebGL2:
		return VertexArray(f.Ctx.Call("createVertexArray"))
	case isObject(f.vao):
		return VertexArray(f.vao.Call("createVertexArrayOES"))
	}
	return VertexArray(js.Null())
}

func (f *WebGL) DeleteBuffer(v Buffer) {
	f.Ctx.Call("deleteBuffer", js.Value(v))
}

func (f *WebGL) DeleteFramebuffer(v Framebuffer) {
	f.Ctx.Call("deleteFramebuffer", js.Value(v))
}

func (f *WebGL) DeleteProgram(p Program) {
	f.Ctx.Call("deleteProgram", js.Value(p))
}

func (f *WebGL) DeleteRenderbuffer(v Renderbuffer) {
	f.Ctx.Call("deleteRenderbuffer", js.Value(v))
}

func (f *WebGL) DeleteShader(s Shader) {
	f.Ctx.Call("deleteShader", js.Value(s))
}

func (f *WebGL) DeleteTexture(v Texture) {
	f.Ctx.Call("deleteTexture", js.Value(v))
}

func (f *WebGL) DeleteVertexArray(a VertexArray) {
	if f.isWebGL2 {
		f.Ctx.Call("deleteVertexArray", js.Value(a))
	} else if isObject(f.vao) {
		f.vao.Call("deleteVertexArrayOES", js.Value(a))
	}
}

func (f *WebGL) DrawArrays(mode Enum, first, count int) {
	f.Ctx.Call("drawArrays", int(mode), first, count)
}

func (f *WebGL) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.Ctx.Call("drawElements", int(mode), count, int(ty), offset)
}

func (f *WebGL) Enable(cap Enum) {
	f.Ctx.Call("enable", int(cap))
}

func (f *WebGL) EnableVertexAttribArray(a Attrib) {
	f.Ctx.Call("enableVertexAttribArray", int(a))
}

func (f *WebGL) FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer) {
	f.Ctx.Call("framebufferRenderbuffer", int(target), int(attachment), int(renderbuffertarget), js.Value(renderbuffer))
}

func (f *WebGL) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	f.Ctx.Call("framebufferTexture2D", int(target), int(attachment), int(texTarget), js.Value(t), level)
}

func (f *WebGL) GenerateMipmap(target Enum) {
	f.Ctx.Call("generateMipmap", int(target))
}

func (f *WebGL) GetActiveAttrib(p Program, index int) (string, int, Enum) {
	return activeInfo(f.Ctx.Call("getActiveAttrib", js.Value(p), index))
}

func (f *WebGL) GetActiveUniform(p Program, index int) (string, int, Enum) {
	return activeInfo(f.Ctx.Call("getActiveUniform", js.Value(p), index))
}

func (f *WebGL) GetAttribLocation(p Program, name string) int {
	return f.Ctx.Call("getAttribLocation", js.Value(p), name).Int()
}

func (f *WebGL) GetProgrami(p Program, pname Enum) int {
	return paramVal(f.Ctx.Call("getProgramParameter", js.Value(p), int(pname)))
}

func (f *WebGL) GetProgramInfoLog(p Program) string {
	return f.Ctx.Call("getProgramInfoLog", js.Value(p)).String()
}

func (f *WebGL) GetShaderi(s Shader, pname Enum) int {
	return paramVal(f.Ctx.Call("getShaderParameter", js.Value(s), int(pname)))
}

func (f *WebGL) GetShaderInfoLog(s Shader) string {
	return f.Ctx.Call("getShaderInfoLog", js.Value(s)).String()
}

func (f *WebGL) GetString(pname Enum) string {
	return f.Ctx.Call("getParameter", int(pname)).String()
}

func (f *WebGL) GetUniformLocation(p Program, name string) Uniform {
	return Uniform(f.Ctx.Call("getUniformLocation", js.Value(p), name))
}

func (f *WebGL) LinkProgram(p Program) {
	f.Ctx.Call("linkProgram", js.Value(p))
}

func (f *WebGL) PixelStorei(pname Enum, param int) {
	f.Ctx.Call("pixelStorei", int(pname), param)
}

func (f *WebGL) RenderbufferStorage(target, internalformat Enum, width, height int) {
	f.Ctx.Call("renderbufferStorage", int(target), int(internalformat), width, height)
}

func (f *WebGL) ShaderSource(s Shader, src string) {
	f.Ctx.Call("shaderSource", js.Value(s), src)
}

func (f *WebGL) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, pixels []byte) {
	var data interface{}
	if pixels != nil {
		data = f.byteArrayOf(pixels)
	}
	f.Ctx.Call("texImage2D", int(target), level, int(internalFormat), width, height, 0, int(format), int(ty), data)
}

func (f *WebGL) TexParameteri(target, pname Enum, param int) {
	f.Ctx.Call("texParameteri", int(target), int(pname), param)
}

func (f *WebGL) Uniform1f(dst Uniform, v float32) {
	f.Ctx.Call("uniform1f", js.Value(dst), v)
}

func (f *WebGL) Uniform1fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform1fv", js.Value(dst), float32Array(v))
}

func (f *WebGL) Uniform2fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform2fv", js.Value(dst), float32Array(v))
}

func (f *WebGL) Uniform3fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform3fv", js.Value(dst), float32Array(v))
}

func (f *WebGL) Uniform4fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform4fv", js.Value(dst), float32Array(v))
}

func (f *WebGL) Uniform1i(dst Uniform, v int) {
	f.Ctx.Call("uniform1i", js.Value(dst), v)
}

func (f *WebGL) Uniform1iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform1iv", js.Value(dst), int32Array(v))
}

func (f *WebGL) Uniform2iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform2iv", js.Value(dst), int32Array(v))
}

func (f *WebGL) Uniform3iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform3iv", js.Value(dst), int32Array(v))
}

func (f *WebGL) Uniform4iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform4iv", js.Value(dst), int32Array(v))
}

func (f *WebGL) UniformMatrix2fv(dst Uniform, transpose bool, v []float32) {
	f.Ctx.Call("uniformMatrix2fv", js.Value(dst), transpose, float32Array(v))
}

func (f *WebGL) UniformMatrix3fv(dst Uniform, transpose bool, v []float32) {
	f.Ctx.Call("uniformMatrix3fv", js.Value(dst), transpose, float32Array(v))
}

func (f *WebGL) UniformMatrix4fv(dst Uniform, transpose bool, v []float32) {
	f.Ctx.Call("uniformMatrix4fv", js.Value(dst), transpose, float32Array(v))
}

func (f *WebGL) UseProgram(p Program) {
	f.Ctx.Call("useProgram", js.Value(p))
}

func (f *WebGL) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.Ctx.Call("vertexAttribPointer", int(dst), size, int(ty), normalized, stride, offset)
}

func (f *WebGL) Viewport(x, y, width, height int) {
	f.Ctx.Call("viewport", x, y, width, height)
}

func (f *WebGL) byteArrayOf(data []byte) js.Value {
	if len(data) == 0 {
		return js.Null()
	}
	f.resizeByteBuffer(len(data))
	ba := f.uint8Array.New(f.arrayBuf, int(0), int(len(data)))
	js.CopyBytesToJS(ba, data)
	return ba
}

func (f *WebGL) resizeByteBuffer(n int) {
	if n == 0 {
		return
	}
	if !f.arrayBuf.IsUndefined() && f.arrayBuf.Length() >= n {
		return
	}
	f.arrayBuf = js.Global().Get("ArrayBuffer").New(n)
}

func float32Array(v []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(v))
	for i, x := range v {
		arr.SetIndex(i, x)
	}
	return arr
}

func int32Array(v []int32) js.Value {
	arr := js.Global().Get("Int32Array").New(len(v))
	for i, x := range v {
		arr.SetIndex(i, x)
	}
	return arr
}

func activeInfo(info js.Value) (string, int, Enum) {
	if !isObject(info) {
		return "", 0, 0
	}
	return info.Get("name").String(), info.Get("size").Int(), Enum(info.Get("type").Int())
}

func paramVal(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if b := v.Bool(); b {
			return 1
		} else {
			return 0
		}
	case js.TypeNumber:
		return v.Int()
	default:
		panic("unknown parameter type")
	}
}
