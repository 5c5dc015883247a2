package jpeg

import "math"

// dequantizeBlock produces the 8x8 matrix F where F[y][x] = diagonal
// coefficient at zig-zag position Z(x,y), multiplied by the corresponding
// quantization table entry Q[y][x].
func dequantizeBlock(coeff [64]int32, q quantTable) [8][8]float64 {
	var f [8][8]float64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			f[y][x] = float64(coeff[zigzagIndex[y][x]]) * float64(q[y][x])
		}
	}
	return f
}

// idct8x8 computes the textbook double-precision inverse discrete cosine
// transform:
//
//	f(x,y) = 1/4 * sum_u sum_v C(u)C(v) F[u][v] cos((2x+1)u*pi/16) cos((2y+1)v*pi/16)
//
// with C(0) = 1/sqrt(2) and C(k) = 1 otherwise. The result is indexed
// [x][y], not yet level-shifted or clamped.
func idct8x8(f [8][8]float64) [8][8]float64 {
	var out [8][8]float64
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			var sum float64
			for u := 0; u < 8; u++ {
				cu := 1.0
				if u == 0 {
					cu = 1.0 / math.Sqrt2
				}
				for v := 0; v < 8; v++ {
					cv := 1.0
					if v == 0 {
						cv = 1.0 / math.Sqrt2
					}
					sum += cu * cv * f[u][v] *
						math.Cos(float64(2*x+1)*float64(u)*math.Pi/16.0) *
						math.Cos(float64(2*y+1)*float64(v)*math.Pi/16.0)
				}
			}
			out[x][y] = sum / 4.0
		}
	}
	return out
}

// levelShift adds 128, clamps to [0,255] and rounds to nearest.
func levelShift(v float64) uint8 {
	r := math.Round(v + 128)
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	return uint8(r)
}

// ycbcrToRGB converts one level-shifted YCbCr sample to RGB using the JFIF
// convention, clamping and rounding each channel.
func ycbcrToRGB(y, cb, cr uint8) (r, g, b uint8) {
	yf, cbf, crf := float64(y), float64(cb), float64(cr)
	rf := yf + 1.402*(crf-128.0)
	gf := yf - 0.344136*(cbf-128.0) - 0.714136*(crf-128.0)
	bf := yf + 1.772*(cbf-128.0)
	return clamp255(rf), clamp255(gf), clamp255(bf)
}

func clamp255(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	return uint8(r)
}

// reconstructTile dequantizes, inverse-transforms, level-shifts and color
// converts one MCU's three coefficient blocks (Y, Cb, Cr, in that order)
// into an 8x8 RGB tile, indexed [row][col].
func reconstructTile(blocks [3][64]int32, lumaQ, chromaQ quantTable) [8][8][3]uint8 {
	var samples [3][8][8]uint8
	for ci := 0; ci < 3; ci++ {
		q := lumaQ
		if ci > 0 {
			q = chromaQ
		}
		f := dequantizeBlock(blocks[ci], q)
		spatial := idct8x8(f)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				samples[ci][y][x] = levelShift(spatial[x][y])
			}
		}
	}

	var tile [8][8][3]uint8
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, g, b := ycbcrToRGB(samples[0][y][x], samples[1][y][x], samples[2][y][x])
			tile[y][x] = [3]uint8{r, g, b}
		}
	}
	return tile
}
