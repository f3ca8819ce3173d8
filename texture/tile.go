// SPDX-License-Identifier: Unlicense OR MIT

package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"glbind.org/internal/gl"
)

// Tile returns an image of the same size as src holding sx×sy scaled
// down copies of it. Scales below 2 in both directions return src
// converted to NRGBA.
func Tile(src image.Image, sx, sy int) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if sx < 1 {
		sx = 1
	}
	if sy < 1 {
		sy = 1
	}
	if sx == 1 && sy == 1 {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	w, h := b.Dx(), b.Dy()
	for i := 0; i < sx; i++ {
		for j := 0; j < sy; j++ {
			r := image.Rect(i*w/sx, j*h/sy, (i+1)*w/sx, (j+1)*h/sy)
			draw.ApproxBiLinear.Scale(dst, r, src, b, draw.Src, nil)
		}
	}
	return dst
}

// pixels returns the rows of img bottom to top, in the layout of
// format with one byte per component.
func pixels(img *image.NRGBA, format gl.Enum) ([]byte, bool) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	var comps int
	switch format {
	case gl.RGBA:
		comps = 4
	case gl.RGB:
		comps = 3
	case gl.LUMINANCE:
		comps = 1
	default:
		return nil, false
	}
	out := make([]byte, 0, w*h*comps)
	for y := h - 1; y >= 0; y-- {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		switch comps {
		case 4:
			out = append(out, row...)
		case 3:
			for x := 0; x < w; x++ {
				out = append(out, row[x*4:x*4+3]...)
			}
		case 1:
			for x := 0; x < w; x++ {
				p := row[x*4 : x*4+4]
				g := color.GrayModel.Convert(color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}).(color.Gray)
				out = append(out, g.Y)
			}
		}
	}
	return out, true
}
