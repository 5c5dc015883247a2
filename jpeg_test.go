package jpeg

import (
	"bytes"
	"testing"
)

// buildMinimalJPEG assembles a hand-built 8x8 single-MCU baseline JPEG: one
// quantization table (all entries 1), one single-symbol DC table and one
// single-symbol AC table (both mapping the 1-bit code "0" to symbol 0x00,
// i.e. DC category 0 / AC end-of-block), and an entropy-coded scan whose
// three blocks (Y, Cb, Cr) are therefore all end-of-block immediately. This
// exercises the "all-zero entropy stream decodes to neutral gray" invariant
// end to end.
func buildMinimalJPEG() []byte {
	var b bytes.Buffer

	b.Write([]byte{0xFF, 0xD8}) // SOI

	// APP0 (JFIF), no thumbnail.
	b.Write([]byte{0xFF, 0xE0, 0x00, 0x10})
	b.WriteString("JFIF\x00")
	b.Write([]byte{0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00})

	// DQT: slot 0, all entries 1.
	b.Write([]byte{0xFF, 0xDB, 0x00, 0x43, 0x00})
	for i := 0; i < 64; i++ {
		b.WriteByte(1)
	}

	// DHT: DC table, class 0, id 0, one code of length 1 -> symbol 0x00.
	b.Write([]byte{0xFF, 0xC4, 0x00, 0x14, 0x00, 0x01})
	for i := 0; i < 15; i++ {
		b.WriteByte(0)
	}
	b.WriteByte(0x00)

	// DHT: AC table, class 1, id 0, one code of length 1 -> symbol 0x00 (EOB).
	b.Write([]byte{0xFF, 0xC4, 0x00, 0x14, 0x10, 0x01})
	for i := 0; i < 15; i++ {
		b.WriteByte(0)
	}
	b.WriteByte(0x00)

	// SOF0: 8-bit, 8x8, 3 components, all 1:1:1 sampling, quant slot 0.
	b.Write([]byte{
		0xFF, 0xC0, 0x00, 0x11,
		0x08,
		0x00, 0x08,
		0x00, 0x08,
		0x03,
		0x01, 0x11, 0x00,
		0x02, 0x11, 0x00,
		0x03, 0x11, 0x00,
	})

	// SOS: 3 components, DC table 0 / AC table 0 each.
	b.Write([]byte{
		0xFF, 0xDA, 0x00, 0x0C,
		0x03,
		0x01, 0x00,
		0x02, 0x00,
		0x03, 0x00,
		0x00, 0x3F, 0x00,
	})

	// Entropy data: 6 bits (DC=0, AC=EOB) x 3 components, padded to one
	// zero byte, followed by EOI.
	b.WriteByte(0x00)
	b.Write([]byte{0xFF, 0xD9}) // EOI

	return b.Bytes()
}

func TestDecodeMinimalAllZeroImage(t *testing.T) {
	raster, err := Decode(bytes.NewReader(buildMinimalJPEG()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if raster.Width != 8 || raster.Height != 8 {
		t.Fatalf("raster dims = %dx%d, want 8x8", raster.Width, raster.Height)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if raster.At(x, y) != [3]uint8{128, 128, 128} {
				t.Fatalf("At(%d,%d) = %v, want [128 128 128]", x, y, raster.At(x, y))
			}
		}
	}
}

func TestDecodeRejectsMissingSOI(t *testing.T) {
	data := buildMinimalJPEG()
	data[0] = 0x00 // corrupt SOI
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for a file missing the start-of-image marker")
	}
}

func TestDecodeRejectsMissingEOI(t *testing.T) {
	data := buildMinimalJPEG()
	data = data[:len(data)-1] // truncate the trailing EOI byte
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for a file missing the end-of-image marker")
	}
}

func TestDecodeRejectsUnsupportedSubsampling(t *testing.T) {
	data := buildMinimalJPEG()
	// Flip the first component's sampling byte from 0x11 to 0x22.
	idx := bytes.Index(data, []byte{0xFF, 0xC0})
	data[idx+11] = 0x22 // component 1's sampling byte (h<<4 | v)
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for unsupported chroma subsampling")
	}
}
