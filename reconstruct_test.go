package jpeg

import "testing"

// flatQuantTable returns a quantization table whose every entry is v.
func flatQuantTable(v uint16) quantTable {
	var q quantTable
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			q[y][x] = v
		}
	}
	return q
}

// TestReconstructTileDCOnlyIsUniform checks that a block whose only nonzero
// coefficient is DC = 1024 (at zigzag position 0), against a unit
// quantization table, IDCTs to a perfectly flat spatial block (every pixel
// identical), since a lone DC term contributes the same constant at every
// (x, y).
func TestReconstructTileDCOnlyIsUniform(t *testing.T) {
	q := flatQuantTable(1)

	var blocks [3][64]int32
	for ci := range blocks {
		blocks[ci][0] = 1024 // DC coefficient, zigzag position 0
	}

	tile := reconstructTile(blocks, q, q)
	want := tile[0][0]
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if tile[y][x] != want {
				t.Fatalf("tile[%d][%d] = %v, want uniform %v", y, x, tile[y][x], want)
			}
		}
	}
}

// TestReconstructTileAllZeroIsGray covers the degenerate all-zero-coefficient
// case: every component's spatial block is exactly 0, level-shifted to 128,
// and converted to neutral gray.
func TestReconstructTileAllZeroIsGray(t *testing.T) {
	q := flatQuantTable(1)
	var blocks [3][64]int32

	tile := reconstructTile(blocks, q, q)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if tile[y][x] != [3]uint8{128, 128, 128} {
				t.Fatalf("tile[%d][%d] = %v, want [128 128 128]", y, x, tile[y][x])
			}
		}
	}
}

func TestYCbCrToRGBNeutralGray(t *testing.T) {
	r, g, b := ycbcrToRGB(128, 128, 128)
	if r != 128 || g != 128 || b != 128 {
		t.Errorf("ycbcrToRGB(128,128,128) = (%d,%d,%d), want (128,128,128)", r, g, b)
	}
}

func TestLevelShiftClamps(t *testing.T) {
	if v := levelShift(200); v != 255 {
		t.Errorf("levelShift(200) = %d, want 255 (clamped)", v)
	}
	if v := levelShift(-200); v != 0 {
		t.Errorf("levelShift(-200) = %d, want 0 (clamped)", v)
	}
	if v := levelShift(0); v != 128 {
		t.Errorf("levelShift(0) = %d, want 128", v)
	}
}
