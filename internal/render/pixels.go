package render

import "image/color"

// fillSwatchRGBA copies per-cell colours into an RGBA pixel buffer.
func fillSwatchRGBA(buf []byte, colors []color.RGBA) {
	for i, c := range colors {
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}
