// SPDX-License-Identifier: Unlicense OR MIT

package buffer

import (
	"glbind.org/glctx"
	"glbind.org/internal/gl"
)

// Drawable is geometry Draw can dispatch.
type Drawable interface {
	// DrawInfo returns the element count, the index type if known and
	// whether the geometry is indexed.
	DrawInfo() (count int, indexType gl.Enum, indexed bool)
}

func (bi *BufferInfo) DrawInfo() (int, gl.Enum, bool) {
	return bi.Count, bi.IndexType, bi.Indices.Valid() || bi.IndexType != 0
}

func (vi *VertexArrayInfo) DrawInfo() (int, gl.Enum, bool) {
	return vi.Count, vi.IndexType, vi.IndexType != 0
}

// Draw issues a draw call for d, which must be bound. Zero mode, count
// and offset mean gl.TRIANGLES, d's count and 0, so gl.POINTS is only
// reachable by calling DrawArrays directly. Indexed geometry without an
// index type is drawn with gl.UNSIGNED_SHORT indices.
func Draw(ctx *glctx.Context, d Drawable, mode gl.Enum, count, offset int) {
	n, indexType, indexed := d.DrawInfo()
	if mode == 0 {
		mode = gl.TRIANGLES
	}
	if count == 0 {
		count = n
	}
	if !indexed {
		ctx.DrawArrays(mode, offset, count)
		return
	}
	if indexType == 0 {
		indexType = gl.UNSIGNED_SHORT
	}
	ctx.DrawElements(mode, count, indexType, offset)
}
