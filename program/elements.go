// SPDX-License-Identifier: Unlicense OR MIT

package program

import (
	"io/fs"
	"path"
)

// Element is a named piece of shader source. Type carries the marker
// identifying the stage, such as "x-shader/x-vertex".
type Element struct {
	Type string
	Text string
}

// Elements resolves element ids to shader sources.
type Elements interface {
	Element(id string) (Element, bool)
}

// ElementMap is an in-memory set of elements.
type ElementMap map[string]Element

func (m ElementMap) Element(id string) (Element, bool) {
	el, ok := m[id]
	return el, ok
}

// FS reads elements from files. The id is the file path and the stage
// is taken from its extension, .vert or .frag.
type FS struct {
	FS fs.FS
}

func (f FS) Element(id string) (Element, bool) {
	var typ string
	switch path.Ext(id) {
	case ".vert", ".vs":
		typ = "x-shader/x-vertex"
	case ".frag", ".fs":
		typ = "x-shader/x-fragment"
	default:
		return Element{}, false
	}
	src, err := fs.ReadFile(f.FS, id)
	if err != nil {
		return Element{}, false
	}
	return Element{Type: typ, Text: string(src)}, true
}
