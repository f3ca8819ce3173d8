// SPDX-License-Identifier: Unlicense OR MIT

package texture

import "net/http"

// setCORS asks the fetch transport for an anonymous CORS request, the
// equivalent of an empty crossOrigin attribute on an image.
func setCORS(req *http.Request) {
	req.Header.Set("js.fetch:mode", "cors")
	req.Header.Set("js.fetch:credentials", "same-origin")
}
