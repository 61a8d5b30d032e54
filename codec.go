package mandel

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/marben/irpc/irpcgen"
)

// maxVarintLen is the longest irpc varint encoding of an int.
const maxVarintLen = 10

// MarshalBinary encodes the view's dimensions, bound and scores as irpc
// varints and compresses them with zstd. A zero View encodes as an empty
// grid.
func (v View) MarshalBinary() ([]byte, error) {
	var raw bytes.Buffer
	enc := irpcgen.NewEncoder(&raw)

	for _, n := range []int{v.width, v.height, v.maxIterations} {
		if err := irpcgen.EncInt(enc, n); err != nil {
			return nil, fmt.Errorf("serialize view header: %w", err)
		}
	}
	for _, s := range v.cells[:v.width*v.height] {
		if err := irpcgen.EncInt(enc, s); err != nil {
			return nil, fmt.Errorf("serialize score: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	comp, err := compressZstd(raw.Bytes())
	if err != nil {
		return nil, fmt.Errorf("zstd encode: %w", err)
	}
	return comp, nil
}

// UnmarshalBinary is the inverse of MarshalBinary. Grids over MaxJobPixels
// and scores outside [0, maxIterations] are rejected with ErrMalformedView.
func (v *View) UnmarshalBinary(b []byte) error {
	raw, err := decompressZstd(b)
	if err != nil {
		return fmt.Errorf("zstd decode: %w", err)
	}
	dec := irpcgen.NewDecoder(bytes.NewReader(raw))

	var width, height, maxIterations int
	for _, n := range []*int{&width, &height, &maxIterations} {
		if err := irpcgen.DecInt(dec, n); err != nil {
			return fmt.Errorf("%w: header: %v", ErrMalformedView, err)
		}
	}
	if width == 0 && height == 0 {
		*v = View{}
		return nil
	}
	if err := checkDimensions(width, height); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedView, err)
	}
	if maxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d", ErrMalformedView, maxIterations)
	}

	cells := make([]int, width*height)
	for i := range cells {
		if err := irpcgen.DecInt(dec, &cells[i]); err != nil {
			return fmt.Errorf("%w: score %d of %d: %v", ErrMalformedView, i, len(cells), err)
		}
		if cells[i] < 0 || cells[i] > maxIterations {
			return fmt.Errorf("%w: score %d outside [0, %d]", ErrMalformedView, cells[i], maxIterations)
		}
	}

	*v = View{width: width, height: height, maxIterations: maxIterations, cells: cells}
	return nil
}

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			panic(fmt.Sprintf("mandel: zstd.NewWriter: %v", err))
		}
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(maxVarintLen*(3+MaxJobPixels))))
		if err != nil {
			panic(fmt.Sprintf("mandel: zstd.NewReader: %v", err))
		}
		return dec
	},
}

func compressZstd(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	enc := zstdEncPool.Get().(*zstd.Encoder)
	defer zstdEncPool.Put(enc)
	enc.Reset(&buf)

	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)
	return dec.DecodeAll(data, nil)
}
