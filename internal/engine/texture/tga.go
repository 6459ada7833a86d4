package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types the decoder understands.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

// ErrTruncated is returned when an image ends before its pixel data does.
var ErrTruncated = errors.New("image data truncated")

// tgaHeader is the subset of the TGA header the decoder needs.
type tgaHeader struct {
	idLength      int
	colorMapType  byte
	imageType     byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("reading TGA header: %w", ErrTruncated)
	}
	h := tgaHeader{
		idLength:      int(data[0]),
		colorMapType:  data[1],
		imageType:     data[2],
		width:         int(data[12]) | int(data[13])<<8,
		height:        int(data[14]) | int(data[15])<<8,
		bytesPerPixel: int(data[16]) / 8,
		topToBottom:   data[17]&0x20 != 0,
	}

	if h.colorMapType != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bytesPerPixel != 3 && h.bytesPerPixel != 4 {
		return h, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", data[16])
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA
// into an RGBA image with the top row first.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("skipping TGA id field: %w", ErrTruncated)
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	w := tgaWriter{img: img, h: h}
	pixels := data[offset:]

	if h.imageType == TGATypeUncompressed {
		if len(pixels) < h.width*h.height*h.bytesPerPixel {
			return nil, fmt.Errorf("reading TGA pixels: %w", ErrTruncated)
		}
		for i := 0; i < h.width*h.height; i++ {
			w.put(readBGRA(pixels[i*h.bytesPerPixel:], h.bytesPerPixel))
		}
		return img, nil
	}

	if err := w.decodeRLE(pixels); err != nil {
		return nil, err
	}
	return img, nil
}

// tgaWriter places pixels in file order, honouring the origin bit.
type tgaWriter struct {
	img *image.RGBA
	h   tgaHeader
	n   int
}

func (w *tgaWriter) done() bool {
	return w.n >= w.h.width*w.h.height
}

func (w *tgaWriter) put(c color.RGBA) {
	x := w.n % w.h.width
	y := w.n / w.h.width
	if !w.h.topToBottom {
		y = w.h.height - 1 - y
	}
	w.img.SetRGBA(x, y, c)
	w.n++
}

// decodeRLE expands run-length packets: the high bit of each packet header
// selects a repeated pixel, otherwise count raw pixels follow.
func (w *tgaWriter) decodeRLE(data []byte) error {
	bpp := w.h.bytesPerPixel
	i := 0
	for !w.done() {
		if i >= len(data) {
			return fmt.Errorf("reading TGA packet: %w", ErrTruncated)
		}
		packet := data[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+bpp > len(data) {
				return fmt.Errorf("reading TGA run: %w", ErrTruncated)
			}
			c := readBGRA(data[i:], bpp)
			i += bpp
			for k := 0; k < count && !w.done(); k++ {
				w.put(c)
			}
			continue
		}

		for k := 0; k < count && !w.done(); k++ {
			if i+bpp > len(data) {
				return fmt.Errorf("reading TGA raw packet: %w", ErrTruncated)
			}
			w.put(readBGRA(data[i:], bpp))
			i += bpp
		}
	}
	return nil
}

func readBGRA(p []byte, bpp int) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if bpp == 4 {
		c.A = p[3]
	}
	return c
}
