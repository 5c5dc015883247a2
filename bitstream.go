package jpeg

// byteReader is a sequential whole-byte cursor over the container bytes,
// used while walking marker segments. It never looks past the buffer it
// was given.
type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *byteReader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, wrapf(ErrMalformedContainer, "container", "unexpected end of stream")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// readUint16BE reads a big-endian 16-bit integer (two bytes b1,b0 => 256*b1+b0).
func (r *byteReader) readUint16BE() (uint16, error) {
	if r.remaining() < 2 {
		return 0, wrapf(ErrMalformedContainer, "container", "unexpected end of stream reading 16-bit field")
	}
	v := uint16(r.data[r.pos])<<8 | uint16(r.data[r.pos+1])
	r.pos += 2
	return v, nil
}

func (r *byteReader) readBytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, wrapf(ErrMalformedContainer, "container", "unexpected end of stream reading %d bytes", n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) skip(n int) error {
	if r.remaining() < n {
		return wrapf(ErrMalformedContainer, "container", "unexpected end of stream skipping %d bytes", n)
	}
	r.pos += n
	return nil
}

// stripScanBody applies the two preprocessing steps required before any bit
// is consumed from the entropy-coded segment:
//
//  1. locate the terminating end-of-image marker (0xFF 0xD9), scanning
//     backward, and truncate the scan body just before it;
//  2. byte-unstuff: every (0xFF, 0x00) pair becomes a single literal 0xFF.
//
// raw must contain the entropy data followed eventually by the file's
// closing EOI marker (the scan body never embeds its own EOI otherwise,
// since restart markers and multi-scan images are out of scope).
func stripScanBody(raw []byte) ([]byte, error) {
	eoi := -1
	for i := len(raw) - 2; i >= 0; i-- {
		if raw[i] == 0xFF && raw[i+1] == 0xD9 {
			eoi = i
			break
		}
	}
	if eoi < 0 {
		return nil, wrapf(ErrMalformedContainer, "container", "missing end-of-image marker")
	}
	scan := raw[:eoi]

	unstuffed := make([]byte, 0, len(scan))
	for i := 0; i < len(scan); i++ {
		if scan[i] == 0xFF && i+1 < len(scan) && scan[i+1] == 0x00 {
			unstuffed = append(unstuffed, 0xFF)
			i++
			continue
		}
		unstuffed = append(unstuffed, scan[i])
	}
	return unstuffed, nil
}

// bitCursor consumes the unstuffed entropy stream MSB-first. It exposes
// both "read one bit" (used by the Huffman walk) and "read N raw bits"
// (used to extract category-coded magnitudes) from the same cursor state,
// so there is no duplicated bit-position bookkeeping between the two
// consumers.
type bitCursor struct {
	data   []byte
	bytePos int
	bitPos  uint // next bit to read within data[bytePos], 0 = MSB
}

func newBitCursor(data []byte) *bitCursor {
	return &bitCursor{data: data}
}

func (c *bitCursor) readBit() (uint8, error) {
	if c.bytePos >= len(c.data) {
		return 0, wrapf(ErrEntropyUnderrun, "entropy", "bit stream exhausted")
	}
	b := c.data[c.bytePos]
	bit := (b >> (7 - c.bitPos)) & 1
	c.bitPos++
	if c.bitPos == 8 {
		c.bitPos = 0
		c.bytePos++
	}
	return bit, nil
}

// readBits reads n bits (0 <= n <= 16) MSB-first, returning them right-aligned.
func (c *bitCursor) readBits(n uint8) (uint32, error) {
	var v uint32
	for i := uint8(0); i < n; i++ {
		bit, err := c.readBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint32(bit)
	}
	return v, nil
}
