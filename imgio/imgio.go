// Package imgio writes score grids as images.
package imgio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	mandel "github.com/marben/silver_mandel"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is an output image format.
type Format string

const (
	PGM  Format = "pgm"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name, case-insensitively; "tif" means TIFF.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PGM, PNG, BMP, TIFF:
		return f, nil
	case "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("no extension in %q", path)
	}
	return ParseFormat(ext)
}

// WritePGM writes v as a plain (P2) PGM: header, then one line per row of
// space separated scores, each padded to three characters.
func WritePGM(w io.Writer, v mandel.View) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P2\n%d %d\n%d\n", v.Width(), v.Height(), v.MaxIterations())
	for row := range v.Height() {
		for col := range v.Width() {
			if col > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%3d", v.At(row, col))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Gray maps scores linearly onto gray levels. Points in the set, scored
// MaxIterations, are black; the fastest escapes are white.
func Gray(v mandel.View) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, v.Width(), v.Height()))
	maxIt := max(v.MaxIterations(), 1)
	for row := range v.Height() {
		for col := range v.Width() {
			s := min(max(v.At(row, col), 0), maxIt)
			img.SetGray(col, row, color.Gray{Y: uint8(255 - s*255/maxIt)})
		}
	}
	return img
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes v in format f. scale enlarges raster formats; PGM is always
// written at one score per pixel.
func Encode(w io.Writer, v mandel.View, f Format, scale int) error {
	if f == PGM {
		return WritePGM(w, v)
	}

	img := Scale(Gray(v), scale)
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}
