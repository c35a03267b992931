package frame

import "fmt"

// FourCC is a four-character pixel/payload format code packed
// little-endian, matching the V4L2 convention.
type FourCC uint32

// MakeFourCC packs four characters into a FourCC.
func MakeFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// Common payload formats.
var (
	FormatJPEG  = MakeFourCC('J', 'P', 'E', 'G')
	FormatMJPEG = MakeFourCC('M', 'J', 'P', 'G')
	FormatRGB24 = MakeFourCC('R', 'G', 'B', '3')
	FormatBGR24 = MakeFourCC('B', 'G', 'R', '3')
	FormatGrey  = MakeFourCC('G', 'R', 'E', 'Y')
	FormatYUYV  = MakeFourCC('Y', 'U', 'Y', 'V')
)

// String renders the code as its four characters, or as a hex value when
// any character is not printable.
func (f FourCC) String() string {
	var chars [4]byte
	for i := range chars {
		chars[i] = byte(f >> (8 * i))
		if chars[i] < 0x20 || chars[i] > 0x7e {
			return fmt.Sprintf("[0x%08x]", uint32(f))
		}
	}
	return string(chars[:])
}

// IsJPEG reports whether the format holds an already compressed
// JPEG/MJPEG payload.
func (f FourCC) IsJPEG() bool {
	return f == FormatJPEG || f == FormatMJPEG
}
