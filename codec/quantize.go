package codec

import "github.com/chewxy/math32"

const (
	MinBytes = 1
	MaxBytes = 3
)

// Number of bits used for quantized codes. One bit out of the available
// 8*bytes is kept free so that prediction deltas may overflow into it.
func precisionBits(bytes int) uint {
	return uint(bytes<<3) - 1
}

// Precision returns the per-component quantization step for the interval
// [bbl, ufr]. Negative spans are clamped to a zero step and the byte width
// is clamped to [MinBytes, MaxBytes].
func Precision[V Vector[V]](bbl, ufr V, bytes int) V {
	scale := float32(1.0 / float64(int64(1)<<precisionBits(ClampBytes(bytes))-1))
	return ufr.Sub(bbl).Map(func(span float32) float32 {
		if !(span > 0) {
			return 0
		}
		return span * scale
	})
}

// Quantize maps v to its integer code for the interval starting at bbl with
// step h. Components with a zero step are degenerate: their offset from bbl
// is kept as is, which is 0 for values on the interval corner.
func Quantize[V Vector[V]](v, bbl, h V) V {
	return v.Zip(bbl, h, func(x, lo, step float32) float32 {
		if step == 0 {
			return x - lo
		}
		return math32.Floor(0.5 + (x-lo)/step)
	})
}

// Unquantize maps an integer code back to the interval starting at bbl with step h.
func Unquantize[V Vector[V]](c, bbl, h V) V {
	return c.Zip(bbl, h, func(code, lo, step float32) float32 {
		if step == 0 {
			return lo + code
		}
		return lo + code*step
	})
}

// QuantizeArray quantizes a list of vectors over the interval [bbl, ufr].
func QuantizeArray[V Vector[V]](values []V, bbl, ufr V, bytes int) []V {
	h := Precision(bbl, ufr, bytes)
	out := make([]V, len(values))
	for index, v := range values {
		out[index] = Quantize(v, bbl, h)
	}
	return out
}

// UnquantizeArray reverses QuantizeArray.
func UnquantizeArray[V Vector[V]](codes []V, bbl, ufr V, bytes int) []V {
	h := Precision(bbl, ufr, bytes)
	out := make([]V, len(codes))
	for index, c := range codes {
		out[index] = Unquantize(c, bbl, h)
	}
	return out
}
