package codec

import "errors"

var (
	ErrParamsUnavailable    = errors.New("codec: compression parameters unavailable")
	ErrInvalidByteWidth     = errors.New("codec: quantization byte width must be 1, 2 or 3")
	ErrUnsupportedArray     = errors.New("codec: unsupported array dimension for attribute")
	ErrStripIndexOutOfRange = errors.New("codec: strip index out of range")
)
