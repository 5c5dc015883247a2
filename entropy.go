package jpeg

import "github.com/pkg/errors"

// extend implements the signed-magnitude "extend" rule: v is the bit-string
// value of width c; if the top bit is set, the value is v itself, otherwise
// it is v - (2^c - 1). extend(0, 0) = 0.
func extend(v uint32, category uint8) int32 {
	if category == 0 {
		return 0
	}
	half := uint32(1) << (category - 1)
	if v < half {
		return int32(v) - int32((uint32(1)<<category)-1)
	}
	return int32(v)
}

// decodeBlock decodes one 8x8 coefficient block (64 diagonal-order values)
// for component index ci: one DC symbol plus category bits, updating the
// running DC predictor, followed by a run of (run,size) AC symbols until an
// end-of-block signal or position 63 is reached.
func (d *Decoder) decodeBlock(c *bitCursor, ci int) ([64]int32, error) {
	var coeff [64]int32
	comp := d.components[ci]

	dcSym, err := d.huffDC[comp.dcTable].decode(c)
	if err != nil {
		return coeff, err
	}
	category := dcSym & 0x0F
	var diff int32
	if category > 0 {
		if category > 11 {
			return coeff, wrapf(ErrMalformedContainer, "entropy", "DC category %d out of range", category)
		}
		v, err := c.readBits(category)
		if err != nil {
			return coeff, err
		}
		diff = extend(v, category)
	}
	d.dcPredictor[ci] += diff
	coeff[0] = d.dcPredictor[ci]

	pos := 1
	for pos <= 63 {
		acSym, err := d.huffAC[comp.acTable].decode(c)
		if err != nil {
			return coeff, err
		}
		run := acSym >> 4
		size := acSym & 0x0F

		if run == 0 && size == 0 { // end-of-block
			break
		}
		if run == 15 && size == 0 { // ZRL: 16 zeros, no value
			pos += 16
			continue
		}

		pos += int(run)
		if pos > 63 {
			return coeff, wrapf(ErrMalformedContainer, "entropy", "AC run overruns block (position %d)", pos)
		}
		v, err := c.readBits(size)
		if err != nil {
			return coeff, err
		}
		coeff[pos] = extend(v, size)
		pos++
	}
	return coeff, nil
}

// decodeScan drives the entropy decoder and block reconstructor together
// over one minimum-coded-unit at a time: the blocks of component 0, 1, 2 are
// decoded in order (so the DC predictor state is updated in emission order),
// and the MCU is reconstructed into a tile before the next MCU is decoded.
func (d *Decoder) decodeScan(scanBody []byte) (*Raster, error) {
	mcusPerRow := (int(d.width) + 7) / 8
	mcusPerCol := (int(d.height) + 7) / 8
	total := mcusPerRow * mcusPerCol
	d.logf("scan: %d MCUs", total)

	raster := newRaster(int(d.width), int(d.height))
	cursor := newBitCursor(scanBody)
	d.dcPredictor = [3]int32{}

	lumaQ := d.quantTables[d.components[0].quantSlot]
	chromaQ := d.quantTables[d.components[1].quantSlot]

	for mcu := 0; mcu < total; mcu++ {
		var blocks [3][64]int32
		for ci := 0; ci < 3; ci++ {
			coeff, err := d.decodeBlock(cursor, ci)
			if err != nil {
				return nil, errors.Wrapf(err, "entropy: MCU %d component %d", mcu, ci)
			}
			blocks[ci] = coeff
		}
		tile := reconstructTile(blocks, lumaQ, chromaQ)
		raster.placeTile(mcu, mcusPerRow, tile)
	}
	return raster, nil
}
