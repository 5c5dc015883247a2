package jpeg

import "bytes"

// parseAPP0 handles the JFIF application segment (0xFFE0): verifies the
// "JFIF\0" signature, reads version/density/thumbnail fields (needed only
// to advance the cursor to the correct offset, per original_source/'s
// decoder.rs), and fails if a thumbnail is declared.
func (d *Decoder) parseAPP0(br *byteReader) error {
	length, err := br.readUint16BE()
	if err != nil {
		return err
	}
	if length < 16 {
		return wrapf(ErrMalformedContainer, "jfif", "APP0 segment too short (%d bytes)", length)
	}
	sig, err := br.readBytes(5)
	if err != nil {
		return err
	}
	if !bytes.Equal(sig, []byte("JFIF\x00")) {
		return wrapf(ErrMalformedContainer, "jfif", "wrong APP0 signature %q", sig)
	}
	// version (2 bytes), density units (1), X/Y density (2+2 bytes): read
	// and discard, matching original_source/'s decoder.rs which reads
	// these purely to keep the cursor aligned.
	if err := br.skip(2 + 1 + 2 + 2); err != nil {
		return err
	}
	thumbW, err := br.readByte()
	if err != nil {
		return err
	}
	thumbH, err := br.readByte()
	if err != nil {
		return err
	}
	if thumbH != 0 {
		return wrapf(ErrUnsupportedFeature, "jfif", "thumbnail declared (%dx%d)", thumbW, thumbH)
	}
	d.logf("APP0 (JFIF) parsed")
	return nil
}

// parseDQT handles a Define-Quantization-Table segment (0xFFDB). A single
// segment may define more than one table; each entry is one precision/slot
// byte followed by 64 values, read in zig-zag order and stored unzigzagged
// in natural row-major order.
func (d *Decoder) parseDQT(br *byteReader) error {
	length, err := br.readUint16BE()
	if err != nil {
		return err
	}
	end := br.pos + int(length) - 2
	for br.pos < end {
		pq, err := br.readByte()
		if err != nil {
			return err
		}
		precision := pq >> 4
		slot := pq & 0x0F
		if precision != 0 {
			return wrapf(ErrUnsupportedFeature, "dqt", "16-bit quantization table not supported")
		}
		if slot > 1 {
			return wrapf(ErrMalformedContainer, "dqt", "invalid quantization table slot %d", slot)
		}
		raw, err := br.readBytes(64)
		if err != nil {
			return err
		}
		var diag [64]uint16
		for i, v := range raw {
			diag[i] = uint16(v)
		}
		d.quantTables[slot] = quantTable(unzigzag64(diag))
		d.quantSet[slot] = true
		d.logf("DQT: defined quantization table %d", slot)
	}
	return nil
}

// parseDHT handles a Define-Huffman-Table segment (0xFFC4). A single
// segment may define more than one table; each entry is one class/id byte,
// 16 length counts, and the concatenated symbol bytes they describe.
func (d *Decoder) parseDHT(br *byteReader) error {
	length, err := br.readUint16BE()
	if err != nil {
		return err
	}
	end := br.pos + int(length) - 2
	for br.pos < end {
		tc, err := br.readByte()
		if err != nil {
			return err
		}
		class := tc >> 4
		id := tc & 0x0F
		if id > 1 {
			return wrapf(ErrMalformedContainer, "dht", "invalid huffman table id %d", id)
		}
		countBytes, err := br.readBytes(16)
		if err != nil {
			return err
		}
		var counts [16]uint8
		total := 0
		for i, c := range countBytes {
			counts[i] = c
			total += int(c)
		}
		symbols, err := br.readBytes(total)
		if err != nil {
			return err
		}
		symbolsCopy := make([]uint8, total)
		copy(symbolsCopy, symbols)

		table, err := buildHuffTable(counts, symbolsCopy)
		if err != nil {
			return err
		}

		switch class {
		case 0:
			d.huffDC[id] = table
		case 1:
			d.huffAC[id] = table
		default:
			return wrapf(ErrMalformedContainer, "dht", "invalid huffman table class %d", class)
		}
		d.logf("DHT: defined huffman table class=%d id=%d (%d symbols)", class, id, total)
	}
	return nil
}

// parseSOF0 handles a baseline Start-Of-Frame segment (0xFFC0): precision
// must be 8, component count must be 3, and each component's sampling
// factors must indicate 1:1:1 (4:4:4) chroma sampling.
func (d *Decoder) parseSOF0(br *byteReader) error {
	if _, err := br.readUint16BE(); err != nil { // length, unused beyond framing
		return err
	}
	precision, err := br.readByte()
	if err != nil {
		return err
	}
	if precision != 8 {
		return wrapf(ErrUnsupportedFeature, "sof0", "unsupported sample precision %d", precision)
	}
	height, err := br.readUint16BE()
	if err != nil {
		return err
	}
	width, err := br.readUint16BE()
	if err != nil {
		return err
	}
	numComponents, err := br.readByte()
	if err != nil {
		return err
	}
	if numComponents != 3 {
		return wrapf(ErrUnsupportedFeature, "sof0", "unsupported component count %d", numComponents)
	}

	var comps [3]component
	for i := 0; i < 3; i++ {
		id, err := br.readByte()
		if err != nil {
			return err
		}
		sampling, err := br.readByte()
		if err != nil {
			return err
		}
		h := sampling >> 4
		v := sampling & 0x0F
		if h != 1 || v != 1 {
			return wrapf(ErrUnsupportedFeature, "sof0", "unsupported chroma subsampling %dx%d on component %d", h, v, id)
		}
		quantSlot, err := br.readByte()
		if err != nil {
			return err
		}
		if quantSlot > 1 {
			return wrapf(ErrMalformedContainer, "sof0", "invalid quantization table slot %d on component %d", quantSlot, id)
		}
		comps[i] = component{id: id, quantSlot: quantSlot}
	}

	d.width = width
	d.height = height
	d.precision = precision
	d.components = comps
	d.haveFrame = true
	d.logf("SOF0: %dx%d, %d components", width, height, numComponents)
	return nil
}

// parseSOSAndDecodeScan handles a Start-Of-Scan segment (0xFFDA): it reads
// the per-component DC/AC table bindings, then hands the remainder of the
// file (up to the closing end-of-image marker) to the entropy decoder and
// block reconstructor, returning the assembled raster.
func (d *Decoder) parseSOSAndDecodeScan(br *byteReader) (*Raster, error) {
	if !d.haveFrame {
		return nil, wrapf(ErrMalformedContainer, "sos", "scan encountered before a frame header")
	}
	if !d.quantSet[0] {
		return nil, wrapf(ErrMalformedContainer, "sos", "missing luminance quantization table")
	}
	for _, c := range d.components {
		if c.quantSlot == 1 && !d.quantSet[1] {
			return nil, wrapf(ErrMalformedContainer, "sos", "missing chrominance quantization table")
		}
	}

	if _, err := br.readUint16BE(); err != nil { // length
		return nil, err
	}
	numComponents, err := br.readByte()
	if err != nil {
		return nil, err
	}
	if numComponents != 3 {
		return nil, wrapf(ErrUnsupportedFeature, "sos", "unsupported scan component count %d", numComponents)
	}
	for i := 0; i < 3; i++ {
		id, err := br.readByte()
		if err != nil {
			return nil, err
		}
		tableSel, err := br.readByte()
		if err != nil {
			return nil, err
		}
		idx := -1
		for j, c := range d.components {
			if c.id == id {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, wrapf(ErrMalformedContainer, "sos", "scan references unknown component id %d", id)
		}
		d.components[idx].dcTable = tableSel >> 4
		d.components[idx].acTable = tableSel & 0x0F
		if d.components[idx].dcTable > 1 || d.components[idx].acTable > 1 {
			return nil, wrapf(ErrMalformedContainer, "sos", "invalid huffman table selector for component %d", id)
		}
	}
	// Ss, Se, AhAl: spectral selection / successive approximation, fixed
	// for baseline and unused here, but still present on the wire.
	if err := br.skip(3); err != nil {
		return nil, err
	}

	for _, c := range d.components {
		if d.huffDC[c.dcTable] == nil || d.huffAC[c.acTable] == nil {
			return nil, wrapf(ErrMalformedContainer, "sos", "missing huffman table for component %d", c.id)
		}
	}

	d.logf("SOS: scan started")

	rawScan, err := br.readBytes(br.remaining())
	if err != nil {
		return nil, err
	}
	scanBody, err := stripScanBody(rawScan)
	if err != nil {
		return nil, err
	}

	raster, err := d.decodeScan(scanBody)
	if err != nil {
		return nil, err
	}
	d.logf("end of image")
	return raster, nil
}
