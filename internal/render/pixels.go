package render

import (
	"image"
	"image/color"
)

// Default colors: empty sites white, occupied sites black.
var (
	On  color.Color = color.Black
	Off color.Color = color.White
)

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// GridImage renders an n×n binary grid into an image, drawing each site as a
// scale×scale block. It returns nil when cells does not hold n*n values.
func GridImage(cells []uint8, n, scale int, on, off color.Color) *image.RGBA {
	if n <= 0 || len(cells) != n*n {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	base := image.NewRGBA(image.Rect(0, 0, n, n))
	fillBinaryRGBA(base.Pix, cells, on, off)
	if scale == 1 {
		return base
	}

	size := n * scale
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		src := base.Pix[(y/scale)*base.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < size; x++ {
			copy(dst[x*4:x*4+4], src[(x/scale)*4:(x/scale)*4+4])
		}
	}
	return img
}
