package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/user/sinkdump/pkg/frame"
)

// compressSoftware encodes the frame payload to JPEG in place with the
// given quality. Payloads that are already JPEG pass through untouched.
func compressSoftware(f *frame.Frame, quality int) error {
	if f.Format.IsJPEG() {
		return nil
	}

	img, err := decodePayload(f)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}

	f.SetPayload(buf.Bytes())
	f.Format = frame.FormatJPEG
	f.Stride = 0
	return nil
}

// decodePayload interprets the raw payload as an image according to the
// frame's pixel format and stride.
func decodePayload(f *frame.Frame) (image.Image, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("bad frame geometry: %dx%d", f.Width, f.Height)
	}

	switch f.Format {
	case frame.FormatRGB24:
		return decodePacked24(f, false)
	case frame.FormatBGR24:
		return decodePacked24(f, true)
	case frame.FormatGrey:
		return decodeGrey(f)
	case frame.FormatYUYV:
		return decodeYUYV(f)
	default:
		return nil, fmt.Errorf("unsupported pixel format: %s", f.Format)
	}
}

func rowStride(f *frame.Frame, rowBytes int) (int, error) {
	stride := f.Stride
	if stride == 0 {
		stride = rowBytes
	}
	if stride < rowBytes {
		return 0, fmt.Errorf("stride %d is smaller than row size %d", stride, rowBytes)
	}
	need := stride*(f.Height-1) + rowBytes
	if len(f.Data) < need {
		return 0, fmt.Errorf("payload too short: have %d, need %d", len(f.Data), need)
	}
	return stride, nil
}

func decodePacked24(f *frame.Frame, bgr bool) (image.Image, error) {
	stride, err := rowStride(f, f.Width*3)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		row := f.Data[y*stride:]
		for x := 0; x < f.Width; x++ {
			r, g, b := row[x*3], row[x*3+1], row[x*3+2]
			if bgr {
				r, b = b, r
			}
			off := img.PixOffset(x, y)
			img.Pix[off] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = b
			img.Pix[off+3] = 0xff
		}
	}
	return img, nil
}

func decodeGrey(f *frame.Frame) (image.Image, error) {
	stride, err := rowStride(f, f.Width)
	if err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		copy(img.Pix[y*img.Stride:], f.Data[y*stride:y*stride+f.Width])
	}
	return img, nil
}

func decodeYUYV(f *frame.Frame) (image.Image, error) {
	// Two pixels per four bytes: Y0 U Y1 V. An odd width would leave the
	// last pixel of each row without its chroma bytes.
	if f.Width%2 != 0 {
		return nil, fmt.Errorf("YUYV requires an even width, got %d", f.Width)
	}
	stride, err := rowStride(f, f.Width*2)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		row := f.Data[y*stride:]
		for x := 0; x < f.Width; x += 2 {
			y0, cb, y1, cr := row[x*2], row[x*2+1], row[x*2+2], row[x*2+3]
			setYCbCr(img, x, y, y0, cb, cr)
			setYCbCr(img, x+1, y, y1, cb, cr)
		}
	}
	return img, nil
}

func setYCbCr(img *image.RGBA, x, y int, lum, cb, cr byte) {
	r, g, b := color.YCbCrToRGB(lum, cb, cr)
	off := img.PixOffset(x, y)
	img.Pix[off] = r
	img.Pix[off+1] = g
	img.Pix[off+2] = b
	img.Pix[off+3] = 0xff
}
