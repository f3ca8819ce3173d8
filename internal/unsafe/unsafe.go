// SPDX-License-Identifier: Unlicense OR MIT

// Package unsafe views numeric slices as bytes for upload.
package unsafe

import (
	"reflect"
	"unsafe"
)

// BytesView returns a byte slice view of a slice, in host byte order.
// An empty slice yields nil.
func BytesView(s interface{}) []byte {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return nil
	}
	first := v.Index(0)
	sz := int(first.Type().Size())
	return unsafe.Slice((*byte)(unsafe.Pointer(first.UnsafeAddr())), v.Len()*sz)
}
