package container

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Blocks are laid out as:
//
//	[method (1)] [block size including header (4 LE)] [raw size (4 LE)] [payload...]
const HeaderSize = 9

// Method identifies the codec used for a block payload.
type Method byte

const (
	None Method = 0x02
	LZ4  Method = 0x82
	Zstd Method = 0x90
)

func (m Method) String() string {
	switch m {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("method(0x%02x)", byte(m))
}

// Parse a method name ("none", "lz4" or "zstd"). An empty name selects None.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	}
	return None, fmt.Errorf("container: unknown compression method %q", name)
}

// Codec compresses and decompresses block payloads.
type Codec interface {
	Method() Method
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte, rawSize int) ([]byte, error)
}

// Get the codec for a method.
func CodecFor(method Method) (Codec, error) {
	switch method {
	case None:
		return noneCodec{}, nil
	case LZ4:
		return lz4Codec{}, nil
	case Zstd:
		return zstdCodec{}, nil
	}
	return nil, fmt.Errorf("container: unknown compression method 0x%02x", byte(method))
}

// EncodeBlock compresses data and returns the full block. Payloads that do
// not shrink are stored uncompressed.
func EncodeBlock(codec Codec, data []byte) ([]byte, error) {
	method := codec.Method()
	payload, err := codec.Compress(data)
	if err != nil {
		return nil, err
	}
	if method != None && len(payload) >= len(data) {
		method, payload = None, data
	}

	totalSize := HeaderSize + len(payload)
	block := make([]byte, totalSize)
	block[0] = byte(method)
	binary.LittleEndian.PutUint32(block[1:5], uint32(totalSize))
	binary.LittleEndian.PutUint32(block[5:9], uint32(len(data)))
	copy(block[HeaderSize:], payload)

	return block, nil
}

// DecodeBlock validates a block header and decompresses its payload.
func DecodeBlock(data []byte) ([]byte, error) {
	method, totalSize, rawSize, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	if int(totalSize) > len(data) || totalSize < HeaderSize {
		return nil, fmt.Errorf("container: block size mismatch: header says %d, have %d", totalSize, len(data))
	}

	codec, err := CodecFor(method)
	if err != nil {
		return nil, err
	}
	return codec.Decompress(data[HeaderSize:totalSize], int(rawSize))
}

// ReadHeader decodes the header of a block.
func ReadHeader(data []byte) (method Method, totalSize, rawSize uint32, err error) {
	if len(data) < HeaderSize {
		return 0, 0, 0, fmt.Errorf("container: block too small: %d bytes", len(data))
	}
	method = Method(data[0])
	totalSize = binary.LittleEndian.Uint32(data[1:5])
	rawSize = binary.LittleEndian.Uint32(data[5:9])
	return method, totalSize, rawSize, nil
}
