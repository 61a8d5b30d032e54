package imgio

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	mandel "github.com/marben/silver_mandel"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testView(t *testing.T) mandel.View {
	t.Helper()
	v, err := mandel.NewView(3, 2, 255, []int{1, 2, 3, 255, 10, 100})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestWritePGM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePGM(&buf, testView(t)); err != nil {
		t.Fatal(err)
	}

	want := "P2\n3 2\n255\n  1   2   3\n255  10 100\n"
	if got := buf.String(); got != want {
		t.Errorf("WritePGM wrote\n%q\nwant\n%q", got, want)
	}
}

func TestGray(t *testing.T) {
	img := Gray(testView(t))

	if got := img.GrayAt(0, 1).Y; got != 0 {
		t.Errorf("in-set pixel = %d, want 0", got)
	}
	if got := img.GrayAt(0, 0).Y; got != 254 {
		t.Errorf("score 1 pixel = %d, want 254", got)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		format Format
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{PNG, func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{BMP, func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) }},
		{TIFF, func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) }},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, testView(t), tt.format, 4); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			img, err := tt.decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
				t.Errorf("bounds = %v, want 12x8", b)
			}
			r, _, _, _ := img.At(11, 7).RGBA()
			if want := uint32(255-100*255/255) * 0x101; r != want {
				t.Errorf("bottom-right pixel = %#x, want %#x", r, want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"png", PNG, true},
		{"PGM", PGM, true},
		{"tif", TIFF, true},
		{"bmp", BMP, true},
		{"jpeg", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if f, err := FormatFromPath("out/set.tiff"); err != nil || f != TIFF {
		t.Errorf("FormatFromPath = %q, %v", f, err)
	}
	if _, err := FormatFromPath("noext"); err == nil {
		t.Error("FormatFromPath accepted a path without extension")
	}
}
