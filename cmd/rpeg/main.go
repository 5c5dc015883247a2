// Command rpeg decodes a baseline JPEG/JFIF file and writes it out as a
// plain portable-pixmap (PPM) file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/andcov/rpeg"
)

const outputPath = "out.ppm"

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: rpeg <path-to-jpeg>")
		os.Exit(1)
	}

	raster, err := jpeg.DecodeFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant decode %s: %v\n", args[0], err)
		os.Exit(1)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant open output %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	defer out.Close()

	if err := jpeg.WritePPM(out, raster); err != nil {
		fmt.Fprintf(os.Stderr, "cant write output %s: %v\n", outputPath, err)
		os.Exit(1)
	}
}
