package encoder

import (
	"bytes"
	"image/jpeg"
	"testing"

	"github.com/user/sinkdump/pkg/frame"
)

func TestCompressSoftwareRGB24(t *testing.T) {
	f := rgbFrame(32, 16)

	if err := compressSoftware(f, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Format != frame.FormatJPEG {
		t.Errorf("expected JPEG format, got %s", f.Format)
	}

	img, err := jpeg.Decode(bytes.NewReader(f.Data))
	if err != nil {
		t.Fatalf("payload is not decodable JPEG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 16 {
		t.Errorf("expected 32x16 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestCompressSoftwareSolidRed(t *testing.T) {
	f := frame.New()
	data := make([]byte, 16*16*3)
	for i := 0; i < len(data); i += 3 {
		data[i] = 235 // R
		data[i+1] = 16
		data[i+2] = 16
	}
	f.SetPayload(data)
	f.Width, f.Height = 16, 16
	f.Format = frame.FormatRGB24
	f.Stride = 48

	if err := compressSoftware(f, 90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(f.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(8, 8).RGBA()
	if r>>8 < 180 || g>>8 > 90 || b>>8 > 90 {
		t.Errorf("expected a red pixel, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestCompressSoftwareGrey(t *testing.T) {
	f := frame.New()
	data := make([]byte, 24*10)
	for i := range data {
		data[i] = byte(i)
	}
	f.SetPayload(data)
	f.Width, f.Height = 24, 10
	f.Format = frame.FormatGrey
	f.Stride = 24

	if err := compressSoftware(f, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(f.Data)); err != nil {
		t.Errorf("payload is not decodable JPEG: %v", err)
	}
}

func TestCompressSoftwareYUYV(t *testing.T) {
	f := frame.New()
	data := make([]byte, 16*8*2)
	for i := range data {
		data[i] = byte(128 + i%64)
	}
	f.SetPayload(data)
	f.Width, f.Height = 16, 8
	f.Format = frame.FormatYUYV
	f.Stride = 32

	if err := compressSoftware(f, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(f.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestCompressSoftwareYUYVOddWidth(t *testing.T) {
	f := frame.New()
	f.SetPayload(make([]byte, 3*2*2))
	f.Width, f.Height = 3, 2
	f.Format = frame.FormatYUYV
	f.Stride = 6

	if err := compressSoftware(f, 80); err == nil {
		t.Error("expected error for odd YUYV width")
	}
}

func TestCompressSoftwareJPEGPassthrough(t *testing.T) {
	f := rgbFrame(8, 8)
	if err := compressSoftware(f, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := append([]byte(nil), f.Data...)
	if err := compressSoftware(f, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(before, f.Data) {
		t.Error("expected JPEG payload to pass through untouched")
	}
}

func TestCompressSoftwareUnsupportedFormat(t *testing.T) {
	f := rgbFrame(8, 8)
	f.Format = frame.MakeFourCC('N', 'V', '1', '2')

	if err := compressSoftware(f, 80); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCompressSoftwareShortPayload(t *testing.T) {
	f := rgbFrame(8, 8)
	f.Data = f.Data[:10]

	if err := compressSoftware(f, 80); err == nil {
		t.Error("expected error for truncated payload")
	}
}

func TestCompressSoftwareStridePadding(t *testing.T) {
	// 8 pixels per row, 4 padding bytes per row.
	width, height, stride := 8, 4, 28
	f := frame.New()
	f.SetPayload(make([]byte, stride*(height-1)+width*3))
	f.Width, f.Height = width, height
	f.Format = frame.FormatRGB24
	f.Stride = stride

	if err := compressSoftware(f, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(f.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}
