package jpeg

// Raster is a W x H matrix of RGB triples (8-bit unsigned per channel),
// built incrementally as tiles are reconstructed. Pixels are stored
// row-major.
type Raster struct {
	Width, Height int
	Pix           [][3]uint8 // len == Width*Height, row-major
}

func newRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([][3]uint8, width*height),
	}
}

// At returns the RGB triple at (x, y).
func (r *Raster) At(x, y int) [3]uint8 {
	return r.Pix[y*r.Width+x]
}

func (r *Raster) set(x, y int, v [3]uint8) {
	r.Pix[y*r.Width+x] = v
}

// placeTile pastes an 8x8 tile produced from MCU index mcu into the
// raster, clipping against the declared image bounds. mcusPerRow is the
// number of MCU columns, i.e. paddedWidth/8. MCUs are consumed in
// row-major tile order, matching the entropy decoder's emission order.
func (r *Raster) placeTile(mcu, mcusPerRow int, tile [8][8][3]uint8) {
	x0 := (mcu % mcusPerRow) * 8
	y0 := (mcu / mcusPerRow) * 8
	for dy := 0; dy < 8; dy++ {
		y := y0 + dy
		if y >= r.Height {
			continue
		}
		for dx := 0; dx < 8; dx++ {
			x := x0 + dx
			if x >= r.Width {
				continue
			}
			r.set(x, y, tile[dy][dx])
		}
	}
}
