// SPDX-License-Identifier: Unlicense OR MIT

package buffer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/sys/cpu"

	"glbind.org/internal/gl"
	gunsafe "glbind.org/internal/unsafe"
)

// ErrDimensionInference is returned when the number of components per
// element can't be inferred from an array's name and length.
var ErrDimensionInference = errors.New("buffer: cannot infer components per element")

// ErrIndexRange is returned when an index does not fit the index type.
var ErrIndexRange = errors.New("buffer: index out of range for type")

// IndicesName is the reserved array name for element indices.
const IndicesName = "indices"

// ElementType is the component type of a typed array. The zero value
// selects the default for the array name.
type ElementType uint8

const (
	Auto ElementType = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
)

// Element is the set of Go types backing typed arrays.
type Element interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | float32
}

// GLType returns the GL component type.
func (t ElementType) GLType() gl.Enum {
	switch t {
	case Int8:
		return gl.BYTE
	case Uint8:
		return gl.UNSIGNED_BYTE
	case Int16:
		return gl.SHORT
	case Uint16:
		return gl.UNSIGNED_SHORT
	case Int32:
		return gl.INT
	case Uint32:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

// Size returns the size of a component in bytes.
func (t ElementType) Size() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	default:
		return 4
	}
}

// Normalized reports whether attributes of this type are normalized
// by default.
func (t ElementType) Normalized() bool {
	return t == Int8 || t == Uint8
}

func (t ElementType) String() string {
	switch t {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Float32:
		return "float32"
	default:
		return "auto"
	}
}

func elementType[T Element]() ElementType {
	var z T
	switch any(z).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	default:
		return Float32
	}
}

// TypedArray is a flat array of components, Num per logical element.
type TypedArray struct {
	Type ElementType
	Num  int

	data interface{}
	n    int
}

// NewTypedArray wraps data without copying. A zero num is inferred
// from name.
func NewTypedArray[T Element](name string, data []T, num int) (*TypedArray, error) {
	if num == 0 {
		var err error
		if num, err = GuessNum(name, len(data)); err != nil {
			return nil, err
		}
	}
	if num < 0 || len(data)%num != 0 {
		return nil, fmt.Errorf("%w: %s has %d values, not a multiple of %d", ErrDimensionInference, name, len(data), num)
	}
	return &TypedArray{Type: elementType[T](), Num: num, data: data, n: len(data)}, nil
}

// Len returns the number of components.
func (a *TypedArray) Len() int {
	return a.n
}

// Count returns the number of logical elements.
func (a *TypedArray) Count() int {
	return a.n / a.Num
}

// Data returns the backing slice, such as a []float32.
func (a *TypedArray) Data() interface{} {
	return a.data
}

// Bytes returns a view of the components in host byte order, the
// order expected by BufferData.
func (a *TypedArray) Bytes() []byte {
	return gunsafe.BytesView(a.data)
}

// Encode returns a copy of the components in the given byte order.
func (a *TypedArray) Encode(order binary.ByteOrder) []byte {
	host := binary.ByteOrder(binary.LittleEndian)
	if cpu.IsBigEndian {
		host = binary.BigEndian
	}
	if order == host {
		return append([]byte(nil), a.Bytes()...)
	}
	var buf bytes.Buffer
	buf.Grow(a.n * a.Type.Size())
	// Slices of fixed size values never fail to encode.
	_ = binary.Write(&buf, order, a.data)
	return buf.Bytes()
}

// GuessNum infers the number of components per element from an array
// name: 2 for texture coordinates, 4 for colors, 1 for indices and 3
// otherwise. It fails if the guess does not divide length.
func GuessNum(name string, length int) (int, error) {
	num := 3
	switch {
	case name == IndicesName:
		num = 1
	case strings.Contains(name, "coord"):
		num = 2
	case strings.Contains(name, "color"):
		num = 4
	}
	if length%num != 0 {
		return 0, fmt.Errorf("%w: %s has %d values, not a multiple of %d; set Num explicitly", ErrDimensionInference, name, length, num)
	}
	return num, nil
}

// Builder fills a typed array through a cursor. Push writes at the
// cursor, growing the array past its initial allocation if needed, and
// Reset moves the cursor to refill it.
type Builder[T Element] struct {
	data   []T
	num    int
	cursor int
}

// NewBuilder allocates room for count elements of num components.
func NewBuilder[T Element](num, count int) *Builder[T] {
	if num <= 0 {
		num = 1
	}
	if count < 0 {
		count = 0
	}
	return &Builder[T]{data: make([]T, num*count), num: num}
}

// Push writes numbers at the cursor. Slices and arrays, nested to any
// depth, are flattened element by element.
func (b *Builder[T]) Push(values ...interface{}) error {
	for _, v := range values {
		if err := b.push(reflect.ValueOf(v)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder[T]) push(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := b.push(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Interface:
		return b.push(v.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.put(T(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.put(T(v.Uint()))
	case reflect.Float32, reflect.Float64:
		b.put(T(v.Float()))
	default:
		return fmt.Errorf("buffer: cannot push %s", v.Kind())
	}
	return nil
}

func (b *Builder[T]) put(x T) {
	if b.cursor < len(b.data) {
		b.data[b.cursor] = x
	} else {
		b.data = append(b.data, x)
	}
	b.cursor++
}

// Reset moves the cursor to index, clamped to the written range.
func (b *Builder[T]) Reset(index int) {
	b.cursor = max(0, min(index, len(b.data)))
}

// Len returns the number of components allocated or written.
func (b *Builder[T]) Len() int {
	return len(b.data)
}

// Finalize returns the built array. The builder keeps sharing its
// storage with the result.
func (b *Builder[T]) Finalize() (*TypedArray, error) {
	if len(b.data)%b.num != 0 {
		return nil, fmt.Errorf("%w: %d values, not a multiple of %d", ErrDimensionInference, len(b.data), b.num)
	}
	return &TypedArray{Type: elementType[T](), Num: b.num, data: b.data, n: len(b.data)}, nil
}

// convert copies a numeric slice into a typed slice.
func convert[T Element, S constraints.Integer | constraints.Float](src []S) []T {
	dst := make([]T, len(src))
	for i, x := range src {
		dst[i] = T(x)
	}
	return dst
}

// Materialize turns the data of an array into a TypedArray. Typed
// slices of the requested element type are used without copying; other
// numeric slices and nested sequences are flattened into a new array.
// A zero Num is inferred with GuessNum; a zero Type means Float32, or
// for indices Uint16 and Uint32 if an index does not fit 16 bits.
func Materialize(a Array, name string) (*TypedArray, error) {
	if name == "" {
		name = a.Name
	}
	if ta, ok := a.Data.(*TypedArray); ok {
		return ta, nil
	}
	if a.Num < 0 {
		return nil, fmt.Errorf("%w: %s has negative Num %d", ErrDimensionInference, name, a.Num)
	}
	typ := a.Type
	if typ == Auto {
		typ = typeOf(a.Data)
	}
	auto := typ == Auto
	if auto {
		typ = Float32
		if name == IndicesName {
			typ = Uint16
		}
	}
	if name == IndicesName && typeOf(a.Data) != typ {
		var err error
		if typ, err = fitIndices(a.Data, typ, auto); err != nil {
			return nil, fmt.Errorf("%w: %s", err, name)
		}
	}
	switch d := a.Data.(type) {
	case []float32:
		if typ == Float32 {
			return NewTypedArray(name, d, a.Num)
		}
	case []uint16:
		if typ == Uint16 {
			return NewTypedArray(name, d, a.Num)
		}
	case []uint8:
		if typ == Uint8 {
			return NewTypedArray(name, d, a.Num)
		}
	case []int8:
		if typ == Int8 {
			return NewTypedArray(name, d, a.Num)
		}
	case []int16:
		if typ == Int16 {
			return NewTypedArray(name, d, a.Num)
		}
	case []int32:
		if typ == Int32 {
			return NewTypedArray(name, d, a.Num)
		}
	case []uint32:
		if typ == Uint32 {
			return NewTypedArray(name, d, a.Num)
		}
	case []float64:
		return convertTo(typ, name, d, a.Num)
	case []int:
		return convertTo(typ, name, d, a.Num)
	}
	n, err := countValues(reflect.ValueOf(a.Data))
	if err != nil {
		return nil, fmt.Errorf("buffer: %s: %w", name, err)
	}
	num := a.Num
	if num == 0 {
		if num, err = GuessNum(name, n); err != nil {
			return nil, err
		}
	}
	switch typ {
	case Int8:
		return build(NewBuilder[int8](num, n/num), a.Data)
	case Uint8:
		return build(NewBuilder[uint8](num, n/num), a.Data)
	case Int16:
		return build(NewBuilder[int16](num, n/num), a.Data)
	case Uint16:
		return build(NewBuilder[uint16](num, n/num), a.Data)
	case Int32:
		return build(NewBuilder[int32](num, n/num), a.Data)
	case Uint32:
		return build(NewBuilder[uint32](num, n/num), a.Data)
	default:
		return build(NewBuilder[float32](num, n/num), a.Data)
	}
}

func build[T Element](b *Builder[T], data interface{}) (*TypedArray, error) {
	if err := b.Push(data); err != nil {
		return nil, err
	}
	return b.Finalize()
}

func convertTo[S constraints.Integer | constraints.Float](typ ElementType, name string, src []S, num int) (*TypedArray, error) {
	switch typ {
	case Int8:
		return NewTypedArray(name, convert[int8](src), num)
	case Uint8:
		return NewTypedArray(name, convert[uint8](src), num)
	case Int16:
		return NewTypedArray(name, convert[int16](src), num)
	case Uint16:
		return NewTypedArray(name, convert[uint16](src), num)
	case Int32:
		return NewTypedArray(name, convert[int32](src), num)
	case Uint32:
		return NewTypedArray(name, convert[uint32](src), num)
	default:
		return NewTypedArray(name, convert[float32](src), num)
	}
}

// fitIndices checks that the largest index fits typ. Automatic types
// widen to Uint32 instead of failing.
func fitIndices(data interface{}, typ ElementType, auto bool) (ElementType, error) {
	var limit float64
	switch typ {
	case Uint8:
		limit = math.MaxUint8
	case Uint16:
		limit = math.MaxUint16
	default:
		return typ, nil
	}
	m := maxValue(reflect.ValueOf(data))
	switch {
	case m <= limit:
		return typ, nil
	case auto:
		return Uint32, nil
	}
	return typ, fmt.Errorf("%w: %v exceeds %s", ErrIndexRange, m, typ)
}

// maxValue returns the largest number in v, or 0 if there is none.
func maxValue(v reflect.Value) float64 {
	var m float64
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			m = math.Max(m, maxValue(v.Index(i)))
		}
	case reflect.Interface:
		m = maxValue(v.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		m = float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		m = float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		m = v.Float()
	}
	return m
}

// typeOf returns the element type of a typed slice, or Auto.
func typeOf(data interface{}) ElementType {
	switch data.(type) {
	case []int8:
		return Int8
	case []uint8:
		return Uint8
	case []int16:
		return Int16
	case []uint16:
		return Uint16
	case []int32:
		return Int32
	case []uint32:
		return Uint32
	case []float32:
		return Float32
	}
	return Auto
}

func countValues(v reflect.Value) (int, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		n := 0
		for i := 0; i < v.Len(); i++ {
			c, err := countValues(v.Index(i))
			if err != nil {
				return 0, err
			}
			n += c
		}
		return n, nil
	case reflect.Interface:
		return countValues(v.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return 1, nil
	case reflect.Invalid:
		return 0, errors.New("no data")
	}
	return 0, fmt.Errorf("unsupported value of kind %s", v.Kind())
}
