package codec

import (
	"fmt"

	"github.com/marchelbling/osg/types"
)

// Kind identifies the semantic channel of an attribute array.
type Kind int

const (
	Vertex Kind = iota
	Normal
	UV
	Color
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Normal:
		return "normal"
	case UV:
		return "uv"
	case Color:
		return "color"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// The transform engaged by the Prediction mode flag.
type transform int

const (
	noTransform transform = iota
	parallelogramTransform
	azimuthalTransform
)

// The interval used for quantizing an attribute.
type interval int

const (
	noInterval interval = iota
	vertexInterval
	uvInterval
	signedUnitInterval
)

type policy struct {
	// Expected array dimension for uncompressed data.
	dim int

	// What the Prediction flag means for this kind.
	prediction transform

	// Where the quantization interval comes from.
	interval interval
}

// Normals are projected instead of predicted: the projection halves their
// size and needs no strip topology. Colors are not transformed.
var kindPolicies = map[Kind]policy{
	Vertex: {dim: 3, prediction: parallelogramTransform, interval: vertexInterval},
	Normal: {dim: 3, prediction: azimuthalTransform, interval: signedUnitInterval},
	UV:     {dim: 2, prediction: parallelogramTransform, interval: uvInterval},
	Color:  {dim: 4, prediction: noTransform, interval: noInterval},
}

// Codec compresses and decompresses attribute arrays using a single set of
// parameters. It keeps no state between calls.
type Codec struct {
	params Params
}

// Create a codec for the given parameters.
func New(params Params) (*Codec, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Codec{params: params}, nil
}

// Get the codec parameters.
func (c *Codec) Params() Params {
	return c.params
}

// Compress an attribute array. The returned array has the same number of
// elements; projected normals shrink from 3 to 2 components.
func (c *Codec) Compress(kind Kind, in types.Array, strips []Strip) (types.Array, error) {
	pol, err := policyFor(kind)
	if err != nil {
		return types.Array{}, err
	}

	if pol.prediction == noTransform {
		return in.Clone(), nil
	}

	if pol.prediction == azimuthalTransform && c.params.Mode.Has(Prediction) {
		if in.Vec3 == nil {
			return types.Array{}, unsupported(kind, in)
		}
		return c.encode2(pol, Project(in.Vec3), nil, false)
	}

	predict := pol.prediction == parallelogramTransform && c.params.Mode.Has(Prediction)
	switch pol.dim {
	case 2:
		if in.Vec2 == nil {
			return types.Array{}, unsupported(kind, in)
		}
		return c.encode2(pol, in.Vec2, strips, predict)
	default:
		if in.Vec3 == nil {
			return types.Array{}, unsupported(kind, in)
		}
		return c.encode3(pol, in.Vec3, strips, predict)
	}
}

// Decompress an attribute array previously produced by Compress with the
// same parameters and strips.
func (c *Codec) Decompress(kind Kind, in types.Array, strips []Strip) (types.Array, error) {
	pol, err := policyFor(kind)
	if err != nil {
		return types.Array{}, err
	}

	if pol.prediction == noTransform {
		return in.Clone(), nil
	}

	if pol.prediction == azimuthalTransform && c.params.Mode.Has(Prediction) {
		if in.Vec2 == nil {
			return types.Array{}, unsupported(kind, in)
		}
		projections, err := c.decode2(pol, in.Vec2, nil, false)
		if err != nil {
			return types.Array{}, err
		}
		return types.Vec3Array(Unproject(projections)), nil
	}

	predict := pol.prediction == parallelogramTransform && c.params.Mode.Has(Prediction)
	switch pol.dim {
	case 2:
		if in.Vec2 == nil {
			return types.Array{}, unsupported(kind, in)
		}
		out, err := c.decode2(pol, in.Vec2, strips, predict)
		if err != nil {
			return types.Array{}, err
		}
		return types.Vec2Array(out), nil
	default:
		if in.Vec3 == nil {
			return types.Array{}, unsupported(kind, in)
		}
		out, err := c.decode3(pol, in.Vec3, strips, predict)
		if err != nil {
			return types.Array{}, err
		}
		return types.Vec3Array(out), nil
	}
}

func (c *Codec) encode2(pol policy, values []types.Vec2, strips []Strip, predict bool) (types.Array, error) {
	var bbox [2]types.Vec2
	if c.params.Mode.Has(Quantization) {
		var err error
		if bbox, err = c.bbox2(pol.interval); err != nil {
			return types.Array{}, err
		}
	}

	out, err := encode(values, strips, bbox, c.params.Bytes, predict, c.params.Mode.Has(Quantization))
	if err != nil {
		return types.Array{}, err
	}
	return types.Vec2Array(out), nil
}

func (c *Codec) encode3(pol policy, values []types.Vec3, strips []Strip, predict bool) (types.Array, error) {
	var bbox [2]types.Vec3
	if c.params.Mode.Has(Quantization) {
		var err error
		if bbox, err = c.bbox3(pol.interval); err != nil {
			return types.Array{}, err
		}
	}

	out, err := encode(values, strips, bbox, c.params.Bytes, predict, c.params.Mode.Has(Quantization))
	if err != nil {
		return types.Array{}, err
	}
	return types.Vec3Array(out), nil
}

func (c *Codec) decode2(pol policy, codes []types.Vec2, strips []Strip, predict bool) ([]types.Vec2, error) {
	var bbox [2]types.Vec2
	if c.params.Mode.Has(Quantization) {
		var err error
		if bbox, err = c.bbox2(pol.interval); err != nil {
			return nil, err
		}
	}
	return decode(codes, strips, bbox, c.params.Bytes, predict, c.params.Mode.Has(Quantization))
}

func (c *Codec) decode3(pol policy, codes []types.Vec3, strips []Strip, predict bool) ([]types.Vec3, error) {
	var bbox [2]types.Vec3
	if c.params.Mode.Has(Quantization) {
		var err error
		if bbox, err = c.bbox3(pol.interval); err != nil {
			return nil, err
		}
	}
	return decode(codes, strips, bbox, c.params.Bytes, predict, c.params.Mode.Has(Quantization))
}

// Predict then quantize. Prediction is skipped when no strips are available.
func encode[V Vector[V]](values []V, strips []Strip, bbox [2]V, bytes int, predict, quantize bool) ([]V, error) {
	if predict && len(strips) != 0 {
		var err error
		if values, err = Predict(values, strips); err != nil {
			return nil, err
		}
	}

	if quantize {
		return QuantizeArray(values, bbox[0], bbox[1], bytes), nil
	}
	return append(make([]V, 0, len(values)), values...), nil
}

// Unquantize then unpredict; the exact reverse of encode.
func decode[V Vector[V]](codes []V, strips []Strip, bbox [2]V, bytes int, predict, quantize bool) ([]V, error) {
	values := codes
	if quantize {
		values = UnquantizeArray(codes, bbox[0], bbox[1], bytes)
	}

	if predict && len(strips) != 0 {
		return Unpredict(values, strips)
	}
	return append(make([]V, 0, len(values)), values...), nil
}

func (c *Codec) bbox3(iv interval) ([2]types.Vec3, error) {
	switch iv {
	case vertexInterval:
		if c.params.VertexBBox == nil {
			return [2]types.Vec3{}, fmt.Errorf("%w: missing vertex bounding box", ErrParamsUnavailable)
		}
		return *c.params.VertexBBox, nil
	case signedUnitInterval:
		return [2]types.Vec3{{-1, -1, -1}, {1, 1, 1}}, nil
	}
	return [2]types.Vec3{}, fmt.Errorf("codec: no 3 component interval for policy %d", iv)
}

func (c *Codec) bbox2(iv interval) ([2]types.Vec2, error) {
	switch iv {
	case uvInterval:
		if c.params.UvBBox == nil {
			return [2]types.Vec2{{0, 0}, {1, 1}}, nil
		}
		return *c.params.UvBBox, nil
	case signedUnitInterval:
		return [2]types.Vec2{{-1, -1}, {1, 1}}, nil
	}
	return [2]types.Vec2{}, fmt.Errorf("codec: no 2 component interval for policy %d", iv)
}

func policyFor(kind Kind) (policy, error) {
	pol, exists := kindPolicies[kind]
	if !exists {
		return policy{}, fmt.Errorf("codec: unknown attribute kind %s", kind)
	}
	return pol, nil
}

func unsupported(kind Kind, in types.Array) error {
	return fmt.Errorf("%w: %s array with %d components", ErrUnsupportedArray, kind, in.Dim())
}
