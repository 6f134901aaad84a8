package codec

import (
	"fmt"
	"strings"

	"github.com/marchelbling/osg/types"
)

// Mode selects the transforms applied by the codec.
type Mode int

const (
	Quantization Mode = 1 << iota
	Prediction

	// Neither transform; attributes pass through unchanged.
	Passthrough Mode = 0
)

// Returns true if all bits of flag are set.
func (m Mode) Has(flag Mode) bool {
	return m&flag == flag && flag != 0
}

func (m Mode) String() string {
	var names []string
	if m.Has(Quantization) {
		names = append(names, "quantization")
	}
	if m.Has(Prediction) {
		names = append(names, "prediction")
	}
	if len(names) == 0 {
		return "passthrough"
	}
	return strings.Join(names, "+")
}

// Params holds everything needed to invert a compression pass. A nil
// bounding box means that the interval was not recorded.
type Params struct {
	Mode  Mode
	Bytes int

	// Quantization interval for vertex positions.
	VertexBBox *[2]types.Vec3

	// Quantization interval for texture coordinates. Defaults to [0, 1].
	UvBBox *[2]types.Vec2
}

// Clamp a byte width to the supported range.
func ClampBytes(bytes int) int {
	if bytes < MinBytes {
		return MinBytes
	}
	if bytes > MaxBytes {
		return MaxBytes
	}
	return bytes
}

// A zero byte width means the parameter was never stored.
func (p Params) validate() error {
	if p.Bytes == 0 {
		return fmt.Errorf("%w: missing byte width", ErrParamsUnavailable)
	}
	if p.Bytes < MinBytes || p.Bytes > MaxBytes {
		return fmt.Errorf("%w; got %d", ErrInvalidByteWidth, p.Bytes)
	}
	return nil
}
