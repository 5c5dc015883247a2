package jpeg

// zigzagIndex[y][x] is the zig-zag (diagonal) sequence position Z(x,y) of
// the spatial position (row y, column x) within an 8x8 block. It is
// precomputed once as a constant table; both directions (linear -> 2D via
// the loop below, and 2D -> linear via direct indexing) are needed by the
// dequantizer and the quantization-table reader.
var zigzagIndex = [8][8]int{
	{0, 1, 5, 6, 14, 15, 27, 28},
	{2, 4, 7, 13, 16, 26, 29, 42},
	{3, 8, 12, 17, 25, 30, 41, 43},
	{9, 11, 18, 24, 31, 40, 44, 53},
	{10, 19, 23, 32, 39, 45, 52, 54},
	{20, 22, 33, 38, 46, 51, 55, 60},
	{21, 34, 37, 47, 50, 56, 59, 61},
	{35, 36, 48, 49, 57, 58, 62, 63},
}

// unzigzag64 rearranges a 64-entry diagonal-order vector into natural
// row-major 8x8 order.
func unzigzag64(diag [64]uint16) [8][8]uint16 {
	var out [8][8]uint16
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			out[y][x] = diag[zigzagIndex[y][x]]
		}
	}
	return out
}
