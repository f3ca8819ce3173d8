// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package texture

import "net/http"

// setCORS does nothing outside browsers, which have no CORS mode.
func setCORS(req *http.Request) {}
