// SPDX-License-Identifier: Unlicense OR MIT

// Package buffer builds GPU buffers from loosely typed arrays, binds
// them to program attributes and issues draw calls.
package buffer

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"glbind.org/glctx"
	"glbind.org/internal/gl"
	"glbind.org/program"
)

// AttribPrefix is prepended to array names to form attribute names.
const AttribPrefix = "a_"

// Array is a named array of vertex data.
type Array struct {
	Name string
	// Data is a typed slice such as []float32, a *TypedArray, or a
	// plain numeric slice, possibly nested, such as []float64 or
	// [][]int.
	Data interface{}
	// Num is the number of components per element. Zero infers it
	// from the name.
	Num int
	// Type is the component type. Zero keeps the type of a typed slice
	// and otherwise means Float32, or Uint16 for indices.
	Type ElementType
	// Count overrides the element count of a non-indexed BufferInfo
	// when this is its first array.
	Count int
}

// Arrays are named arrays in declaration order. The array named
// "indices", if any, holds element indices.
type Arrays []Array

// Get returns the array with the given name.
func (as Arrays) Get(name string) (Array, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Array{}, false
}

// BufferInfo is a set of vertex buffers ready to be bound to a
// program's attributes.
type BufferInfo struct {
	// Attribs maps attribute names to their bindings.
	Attribs map[string]program.AttribBinding
	// Indices is the index buffer, or invalid if the geometry is not
	// indexed.
	Indices   gl.Buffer
	IndexType gl.Enum
	// Count is the number of indices, or vertices if not indexed.
	Count int
	// VertexArray, if valid, captures the bindings and is bound
	// instead of them.
	VertexArray gl.VertexArray
}

// Buffers is the result of CreateBuffersFromArrays.
type Buffers struct {
	Buffers map[string]gl.Buffer
	Count   int
}

// allocation tracks the buffers created by one call so they can be
// deleted if the call fails.
type allocation struct {
	ctx     *glctx.Context
	buffers []gl.Buffer
}

func (al *allocation) create(target gl.Enum, a *TypedArray) (gl.Buffer, error) {
	b := al.ctx.CreateBuffer()
	if !b.Valid() {
		return b, errors.New("buffer: glCreateBuffer failed")
	}
	al.buffers = append(al.buffers, b)
	al.ctx.BindBuffer(target, b)
	al.ctx.BufferData(target, a.Bytes(), gl.STATIC_DRAW)
	return b, nil
}

func (al *allocation) rollback() {
	for _, b := range al.buffers {
		al.ctx.DeleteBuffer(b)
	}
	al.buffers = nil
}

// CreateBufferFromTypedArray uploads a into a new buffer bound to
// target, gl.ARRAY_BUFFER or gl.ELEMENT_ARRAY_BUFFER.
func CreateBufferFromTypedArray(ctx *glctx.Context, a *TypedArray, target gl.Enum) (gl.Buffer, error) {
	al := &allocation{ctx: ctx}
	return al.create(target, a)
}

// CreateBufferInfoFromArrays uploads every array into its own buffer.
// Arrays other than indices become attributes named AttribPrefix+name.
// If any array fails, the buffers created so far are deleted.
func CreateBufferInfoFromArrays(ctx *glctx.Context, arrays Arrays) (*BufferInfo, error) {
	al := &allocation{ctx: ctx}
	bi, err := createBufferInfo(al, arrays, defaultMapping(arrays))
	if err != nil {
		al.rollback()
		ctx.Log.Error("buffer: failed to create buffer info", "err", err)
		return nil, err
	}
	return bi, nil
}

// CreateAttribsFromArrays uploads the arrays named by mapping, which
// maps attribute names to array names.
func CreateAttribsFromArrays(ctx *glctx.Context, arrays Arrays, mapping map[string]string) (map[string]program.AttribBinding, error) {
	al := &allocation{ctx: ctx}
	attribs, err := createAttribs(al, arrays, mapping)
	if err != nil {
		al.rollback()
		return nil, err
	}
	return attribs, nil
}

// CreateBuffersFromArrays uploads every array into a buffer keyed by
// array name. Count is the number of indices if present, else the
// element count of the first array.
func CreateBuffersFromArrays(ctx *glctx.Context, arrays Arrays) (*Buffers, error) {
	al := &allocation{ctx: ctx}
	bufs := &Buffers{Buffers: make(map[string]gl.Buffer)}
	for _, a := range arrays {
		ta, err := Materialize(a, a.Name)
		if err != nil {
			al.rollback()
			return nil, err
		}
		target := gl.Enum(gl.ARRAY_BUFFER)
		if a.Name == IndicesName {
			target = gl.ELEMENT_ARRAY_BUFFER
		}
		b, err := al.create(target, ta)
		if err != nil {
			al.rollback()
			return nil, err
		}
		bufs.Buffers[a.Name] = b
	}
	count, err := elementCount(arrays)
	if err != nil {
		al.rollback()
		return nil, err
	}
	bufs.Count = count
	return bufs, nil
}

func createBufferInfo(al *allocation, arrays Arrays, mapping map[string]string) (*BufferInfo, error) {
	attribs, err := createAttribs(al, arrays, mapping)
	if err != nil {
		return nil, err
	}
	bi := &BufferInfo{Attribs: attribs}
	if a, ok := arrays.Get(IndicesName); ok {
		ta, err := Materialize(a, IndicesName)
		if err != nil {
			return nil, err
		}
		if bi.Indices, err = al.create(gl.ELEMENT_ARRAY_BUFFER, ta); err != nil {
			return nil, err
		}
		bi.Count = ta.Len()
		bi.IndexType = ta.Type.GLType()
		return bi, nil
	}
	if bi.Count, err = elementCount(arrays); err != nil {
		return nil, err
	}
	return bi, nil
}

func createAttribs(al *allocation, arrays Arrays, mapping map[string]string) (map[string]program.AttribBinding, error) {
	attribs := make(map[string]program.AttribBinding, len(mapping))
	names := maps.Keys(mapping)
	slices.Sort(names)
	for _, attrib := range names {
		arrayName := mapping[attrib]
		a, ok := arrays.Get(arrayName)
		if !ok {
			return nil, fmt.Errorf("buffer: no array %q for attribute %q", arrayName, attrib)
		}
		ta, err := Materialize(a, arrayName)
		if err != nil {
			return nil, err
		}
		b, err := al.create(gl.ARRAY_BUFFER, ta)
		if err != nil {
			return nil, err
		}
		attribs[attrib] = program.AttribBinding{
			Buffer:        b,
			NumComponents: ta.Num,
			Type:          ta.Type.GLType(),
			Normalize:     ta.Type.Normalized(),
		}
	}
	return attribs, nil
}

// defaultMapping maps AttribPrefix+name to name for every array but
// the indices.
func defaultMapping(arrays Arrays) map[string]string {
	m := make(map[string]string, len(arrays))
	for _, a := range arrays {
		if a.Name != IndicesName {
			m[AttribPrefix+a.Name] = a.Name
		}
	}
	return m
}

// elementCount returns the number of indices, or the explicit or
// inferred element count of the first non-index array.
func elementCount(arrays Arrays) (int, error) {
	if a, ok := arrays.Get(IndicesName); ok {
		ta, err := Materialize(a, IndicesName)
		if err != nil {
			return 0, err
		}
		return ta.Len(), nil
	}
	for _, a := range arrays {
		if a.Count > 0 {
			return a.Count, nil
		}
		ta, err := Materialize(a, a.Name)
		if err != nil {
			return 0, err
		}
		return ta.Count(), nil
	}
	return 0, nil
}
