package frame

import (
	"bytes"
	"testing"
)

func TestSetPayloadReusesCapacity(t *testing.T) {
	f := New()
	f.SetPayload(make([]byte, 4096))
	backing := cap(f.Data)

	f.SetPayload([]byte("small"))
	if len(f.Data) != 5 {
		t.Errorf("expected used length 5, got %d", len(f.Data))
	}
	if cap(f.Data) != backing {
		t.Errorf("expected backing capacity %d retained, got %d", backing, cap(f.Data))
	}
}

func TestSetPayloadGrows(t *testing.T) {
	f := New()
	f.SetPayload([]byte("ab"))
	big := make([]byte, 1024)
	f.SetPayload(big)
	if len(f.Data) != 1024 {
		t.Errorf("expected used length 1024, got %d", len(f.Data))
	}
}

func TestCopyFromIsDeep(t *testing.T) {
	src := New()
	src.SetPayload([]byte("payload"))
	src.Width = 640
	src.Height = 480
	src.Format = FormatJPEG
	src.Stride = 0
	src.Online = true
	src.GrabTS = 1.5

	dst := New()
	dst.CopyFrom(src)

	src.Data[0] = 'X'
	if !bytes.Equal(dst.Data, []byte("payload")) {
		t.Error("expected a deep payload copy")
	}
	if dst.Width != 640 || dst.Height != 480 || !dst.Online || dst.GrabTS != 1.5 {
		t.Error("metadata not copied")
	}
}

func TestFourCCString(t *testing.T) {
	if got := FormatJPEG.String(); got != "JPEG" {
		t.Errorf("expected JPEG, got %q", got)
	}
	if got := FormatYUYV.String(); got != "YUYV" {
		t.Errorf("expected YUYV, got %q", got)
	}
	if got := FourCC(0x00000001).String(); got != "[0x00000001]" {
		t.Errorf("expected hex fallback, got %q", got)
	}
}

func TestMakeFourCC(t *testing.T) {
	code := MakeFourCC('R', 'G', 'B', '3')
	if code != FormatRGB24 {
		t.Errorf("expected %v, got %v", FormatRGB24, code)
	}
	if code.String() != "RGB3" {
		t.Errorf("expected RGB3, got %q", code.String())
	}
}

func TestIsJPEG(t *testing.T) {
	if !FormatJPEG.IsJPEG() || !FormatMJPEG.IsJPEG() {
		t.Error("expected JPEG and MJPG to report as JPEG")
	}
	if FormatRGB24.IsJPEG() {
		t.Error("RGB3 must not report as JPEG")
	}
}
