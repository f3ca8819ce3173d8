// SPDX-License-Identifier: Unlicense OR MIT

package buffer

import (
	"errors"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
	"glbind.org/program"
)

// ErrNoVertexArrays is returned when the context lacks vertex array
// objects.
var ErrNoVertexArrays = errors.New("buffer: vertex array objects not supported")

// VertexArrayInfo is a vertex array capturing the bindings of a
// BufferInfo. It is only valid for programs whose attributes have the
// locations it was created with.
type VertexArrayInfo struct {
	Count       int
	IndexType   gl.Enum
	VertexArray gl.VertexArray
}

// BindBuffersAndAttributes binds bi for drawing with pi. A BufferInfo
// with a vertex array binds just that.
func BindBuffersAndAttributes(ctx *glctx.Context, pi *program.ProgramInfo, bi *BufferInfo) {
	if bi.VertexArray.Valid() {
		ctx.BindVertexArray(bi.VertexArray)
		return
	}
	setAttributes(ctx, pi, bi.Attribs, bi.Indices)
}

// BindVertexArrayInfo binds the vertex array of vi.
func BindVertexArrayInfo(ctx *glctx.Context, vi *VertexArrayInfo) {
	ctx.BindVertexArray(vi.VertexArray)
}

func setAttributes(ctx *glctx.Context, pi *program.ProgramInfo, attribs map[string]program.AttribBinding, indices gl.Buffer) {
	program.SetAttributes(pi, attribs)
	if indices.Valid() {
		ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indices)
	}
}

// CreateVertexArrayInfo records the bindings of bi for every program
// in a new vertex array.
func CreateVertexArrayInfo(ctx *glctx.Context, bi *BufferInfo, programs ...*program.ProgramInfo) (*VertexArrayInfo, error) {
	vao, err := record(ctx, func() {
		for _, pi := range programs {
			setAttributes(ctx, pi, bi.Attribs, bi.Indices)
		}
	})
	if err != nil {
		return nil, err
	}
	return &VertexArrayInfo{Count: bi.Count, IndexType: bi.IndexType, VertexArray: vao}, nil
}

// CreateVAOFromBufferInfo records the bindings of bi for pi in a new
// vertex array.
func CreateVAOFromBufferInfo(ctx *glctx.Context, pi *program.ProgramInfo, bi *BufferInfo) (gl.VertexArray, error) {
	return record(ctx, func() {
		setAttributes(ctx, pi, bi.Attribs, bi.Indices)
	})
}

// record creates and binds a vertex array, runs bind and unbinds the
// vertex array so later buffer changes don't alter it.
func record(ctx *glctx.Context, bind func()) (gl.VertexArray, error) {
	var zero gl.VertexArray
	if !ctx.VertexArrays() {
		return zero, ErrNoVertexArrays
	}
	vao := ctx.CreateVertexArray()
	if !vao.Valid() {
		return zero, errors.New("buffer: glCreateVertexArray failed")
	}
	ctx.BindVertexArray(vao)
	bind()
	ctx.BindVertexArray(zero)
	return vao, nil
}
