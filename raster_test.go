package jpeg

import "testing"

// TestPlaceTileClipsToBounds checks that a raster smaller than a whole
// number of MCUs still comes out at exactly its declared dimensions, with
// out-of-bounds tile samples discarded.
func TestPlaceTileClipsToBounds(t *testing.T) {
	const w, h = 10, 10
	mcusPerRow := (w + 7) / 8 // 2
	mcusPerCol := (h + 7) / 8 // 2
	total := mcusPerRow * mcusPerCol
	if total != 4 {
		t.Fatalf("expected 4 MCUs for a 10x10 image, got %d", total)
	}

	r := newRaster(w, h)
	var tile [8][8][3]uint8
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			tile[y][x] = [3]uint8{1, 2, 3}
		}
	}
	for mcu := 0; mcu < total; mcu++ {
		r.placeTile(mcu, mcusPerRow, tile)
	}

	if r.Width != w || r.Height != h {
		t.Fatalf("raster dims = %dx%d, want %dx%d", r.Width, r.Height, w, h)
	}
	if len(r.Pix) != w*h {
		t.Fatalf("len(Pix) = %d, want %d", len(r.Pix), w*h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.At(x, y) != [3]uint8{1, 2, 3} {
				t.Fatalf("At(%d,%d) = %v, want [1 2 3]", x, y, r.At(x, y))
			}
		}
	}
}

func TestPlaceTileSkipsOutOfBoundsMCU(t *testing.T) {
	r := newRaster(4, 4)
	var tile [8][8][3]uint8
	tile[0][0] = [3]uint8{9, 9, 9}

	// A single MCU covers the whole 4x4 raster (8x8 tile clipped to 4x4).
	r.placeTile(0, 1, tile)
	if r.At(0, 0) != [3]uint8{9, 9, 9} {
		t.Fatalf("At(0,0) = %v, want [9 9 9]", r.At(0, 0))
	}
	if len(r.Pix) != 16 {
		t.Fatalf("len(Pix) = %d, want 16", len(r.Pix))
	}
}
