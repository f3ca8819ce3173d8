// SPDX-License-Identifier: Unlicense OR MIT

package program

import "syscall/js"

// Document resolves ids to <script> elements of the page, such as
// <script id="vs" type="x-shader/x-vertex">.
type Document struct{}

func (Document) Element(id string) (Element, bool) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return Element{}, false
	}
	return Element{Type: el.Get("type").String(), Text: el.Get("text").String()}, true
}
