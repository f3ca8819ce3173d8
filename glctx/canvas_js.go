// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"fmt"
	"syscall/js"

	"glbind.org/internal/gl"
)

// Canvas is an HTMLCanvasElement.
type Canvas js.Value

// CanvasByID looks up a canvas element in the document.
func CanvasByID(id string) (Canvas, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return Canvas{}, fmt.Errorf("glctx: no canvas element %q", id)
	}
	return Canvas(el), nil
}

func (c Canvas) Context(kind Kind, opts Options) (gl.Functions, error) {
	attrs := map[string]interface{}{
		"alpha":                 opts.Alpha,
		"depth":                 opts.Depth,
		"stencil":               opts.Stencil,
		"antialias":             opts.Antialias,
		"premultipliedAlpha":    opts.PremultipliedAlpha,
		"preserveDrawingBuffer": opts.PreserveDrawingBuffer,
	}
	ctx := js.Value(c).Call("getContext", string(kind), attrs)
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, fmt.Errorf("glctx: canvas has no %s context", kind)
	}
	return gl.NewWebGL(ctx), nil
}
