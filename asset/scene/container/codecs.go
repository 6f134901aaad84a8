package container

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type noneCodec struct{}

func (noneCodec) Method() Method { return None }

func (noneCodec) Compress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (noneCodec) Decompress(src []byte, rawSize int) ([]byte, error) {
	if len(src) != rawSize {
		return nil, fmt.Errorf("container: expected %d raw bytes; got %d", rawSize, len(src))
	}
	return append([]byte(nil), src...), nil
}

type lz4Codec struct{}

func (lz4Codec) Method() Method { return LZ4 }

func (lz4Codec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("container: lz4 compress: %w", err)
	}
	if n == 0 {
		// incompressible; EncodeBlock falls back to storing the raw payload
		return src, nil
	}
	return dst[:n], nil
}

func (lz4Codec) Decompress(src []byte, rawSize int) ([]byte, error) {
	if rawSize == 0 {
		return []byte{}, nil
	}
	dst := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("container: lz4 decompress: %w", err)
	}
	if n != rawSize {
		return nil, fmt.Errorf("container: lz4 decompress: expected %d bytes; got %d", rawSize, n)
	}
	return dst, nil
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	if zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression)); err != nil {
		panic(err)
	}
	if zstdDecoder, err = zstd.NewReader(nil); err != nil {
		panic(err)
	}
}

type zstdCodec struct{}

func (zstdCodec) Method() Method { return Zstd }

func (zstdCodec) Compress(src []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(src, make([]byte, 0, len(src)/2)), nil
}

func (zstdCodec) Decompress(src []byte, rawSize int) ([]byte, error) {
	dst, err := zstdDecoder.DecodeAll(src, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("container: zstd decompress: %w", err)
	}
	if len(dst) != rawSize {
		return nil, fmt.Errorf("container: zstd decompress: expected %d bytes; got %d", rawSize, len(dst))
	}
	return dst, nil
}
