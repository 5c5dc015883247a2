/*
Package jpeg decodes a baseline (non-progressive, 8-bit, Huffman-coded,
4:4:4 chroma-sampled) JPEG/JFIF still image into an uncompressed RGB
raster.

The pipeline is, leaves first: a byte/bit stream reader walks the marker
segments and, once it reaches the scan, hands the remaining bits to an
entropy decoder; as soon as the three coefficient blocks of a minimum
coded unit are decoded, they are dequantized, inverse-transformed,
level-shifted and color-converted into an 8x8 tile; tiles are pasted into
the final raster as they are produced.
Decoding is a single synchronous call: it either completes or fails, with
no partial output on failure.
*/
package jpeg

import (
	"fmt"
	"io"
	"os"
)

// Marker codes recognized by the container parser. Each is the second byte
// of a 0xFF-prefixed marker pair.
const (
	markerSOI  = 0xD8 // Start Of Image
	markerEOI  = 0xD9 // End Of Image
	markerAPP0 = 0xE0 // Application-0 (JFIF)
	markerDQT  = 0xDB // Define Quantization Table
	markerDHT  = 0xC4 // Define Huffman Table
	markerSOF0 = 0xC0 // Start Of Frame 0 (baseline DCT)
	markerSOS  = 0xDA // Start Of Scan
	markerCOM  = 0xFE // Comment
)

// isStandaloneMarker reports whether code is a marker with no length
// prefix; this decoder does not support one appearing in the container
// (TEM, or a restart marker RST0-RST7).
func isStandaloneMarker(code byte) bool {
	return code == 0x01 || (code >= 0xD0 && code <= 0xD7)
}

// quantTable is an 8x8 matrix of unsigned values in natural row-major
// order, indexed [row][col]. Two slots exist: 0 = luminance, 1 = chrominance.
type quantTable [8][8]uint16

// component describes one of the three YCbCr components as bound by the
// frame header and the scan header.
type component struct {
	id        uint8
	quantSlot uint8 // index into Decoder.quantTables
	dcTable   uint8 // index into Decoder.huffDC, set by the scan header
	acTable   uint8 // index into Decoder.huffAC, set by the scan header
}

// Decoder owns all state for a single decode: the byte stream buffer, code
// tables, quantization tables, frame description and DC predictor state;
// the raster under construction is local to the scan decode. There is no
// concurrency, so there are no locks; the whole
// decode is one synchronous top-to-bottom pass over the byte stream.
type Decoder struct {
	// Verbose gates diagnostic messages written to stderr at phase
	// boundaries.
	Verbose bool

	data []byte

	quantTables [2]quantTable
	quantSet    [2]bool

	huffDC [2]*huffTable
	huffAC [2]*huffTable

	width, height uint16
	precision     uint8
	components    [3]component
	haveFrame     bool

	dcPredictor [3]int32
}

// Decode reads a complete baseline JPEG/JFIF image from r and returns the
// decoded RGB raster.
func Decode(r io.Reader) (*Raster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapf(ErrIO, "io", "reading input: %v", err)
	}
	d := &Decoder{data: data}
	return d.decode()
}

// DecodeFile opens path and decodes it: a single input file, read in its
// entirety before any decoding begins.
func DecodeFile(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapf(ErrIO, "io", "opening %s: %v", path, err)
	}
	defer f.Close()
	return Decode(f)
}

func (d *Decoder) logf(format string, args ...interface{}) {
	if d.Verbose {
		fmt.Fprintf(os.Stderr, "jpeg: "+format+"\n", args...)
	}
}

func (d *Decoder) decode() (*Raster, error) {
	br := newByteReader(d.data)

	b0, err := br.readByte()
	if err != nil {
		return nil, err
	}
	b1, err := br.readByte()
	if err != nil {
		return nil, err
	}
	if b0 != 0xFF || b1 != markerSOI {
		return nil, wrapf(ErrMalformedContainer, "container", "missing start-of-image marker")
	}
	d.logf("start of image")

	if len(d.data) < 2 || d.data[len(d.data)-2] != 0xFF || d.data[len(d.data)-1] != markerEOI {
		return nil, wrapf(ErrMalformedContainer, "container", "missing end-of-image marker")
	}

	for {
		marker, err := br.readByte()
		if err != nil {
			return nil, err
		}
		if marker != 0xFF {
			return nil, wrapf(ErrMalformedContainer, "container", "expected marker prefix 0xFF, got 0x%02X", marker)
		}
		code, err := br.readByte()
		if err != nil {
			return nil, err
		}
		if code == 0xFF {
			// Fill bytes before a marker code are tolerated.
			br.pos--
			continue
		}
		if isStandaloneMarker(code) {
			return nil, wrapf(ErrUnsupportedFeature, "container", "unsupported standalone marker 0xFF%02X", code)
		}

		switch code {
		case markerAPP0:
			if err := d.parseAPP0(br); err != nil {
				return nil, err
			}
		case markerDQT:
			if err := d.parseDQT(br); err != nil {
				return nil, err
			}
		case markerDHT:
			if err := d.parseDHT(br); err != nil {
				return nil, err
			}
		case markerSOF0:
			if err := d.parseSOF0(br); err != nil {
				return nil, err
			}
		case markerCOM:
			if err := d.skipSegment(br); err != nil {
				return nil, err
			}
		case markerSOS:
			return d.parseSOSAndDecodeScan(br)
		case markerEOI:
			return nil, wrapf(ErrMalformedContainer, "container", "end-of-image encountered before a scan")
		default:
			if err := d.skipSegment(br); err != nil {
				return nil, err
			}
		}
	}
}

// skipSegment reads a segment's big-endian length (which includes its own
// two length bytes) and discards the remainder of the payload.
func (d *Decoder) skipSegment(br *byteReader) error {
	length, err := br.readUint16BE()
	if err != nil {
		return err
	}
	if length < 2 {
		return wrapf(ErrMalformedContainer, "container", "segment length %d is too small", length)
	}
	return br.skip(int(length) - 2)
}
