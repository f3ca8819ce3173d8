// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "syscall/js"

type (
	Buffer       js.Value
	Framebuffer  js.Value
	Program      js.Value
	Renderbuffer js.Value
	Shader       js.Value
	Texture      js.Value
	Uniform      js.Value
	VertexArray  js.Value
)

func (b Buffer) Valid() bool {
	return isObject(js.Value(b))
}

func (f Framebuffer) Valid() bool {
	return isObject(js.Value(f))
}

func (p Program) Valid() bool {
	return isObject(js.Value(p))
}

func (r Renderbuffer) Valid() bool {
	return isObject(js.Value(r))
}

func (s Shader) Valid() bool {
	return isObject(js.Value(s))
}

func (t Texture) Valid() bool {
	return isObject(js.Value(t))
}

func (u Uniform) Valid() bool {
	return isObject(js.Value(u))
}

func (a VertexArray) Valid() bool {
	return isObject(js.Value(a))
}

func isObject(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}
