package jpeg

import (
	"bufio"
	"fmt"
	"io"
)

// WritePPM writes raster as a plain portable-pixmap (P3) file: a header of
// magic, dimensions and max value, followed by one "R G B" triple per
// line, row-major, top-to-bottom, left-to-right. This is an external
// collaborator to the decode pipeline proper — a trivial textual dump with
// no color profile or comment lines.
func WritePPM(w io.Writer, raster *Raster) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", raster.Width, raster.Height); err != nil {
		return wrapf(ErrIO, "ppm", "writing header: %v", err)
	}
	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			px := raster.At(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", px[0], px[1], px[2]); err != nil {
				return wrapf(ErrIO, "ppm", "writing pixel (%d,%d): %v", x, y, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return wrapf(ErrIO, "ppm", "flushing output: %v", err)
	}
	return nil
}
