package compressor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marchelbling/osg/codec"
)

// Attribute is a bitmask selecting the geometry arrays to process.
type Attribute int

const (
	VertexAttribute Attribute = 1 << iota
	NormalAttribute
	UVAttribute
	ColorAttribute

	AllAttributes = VertexAttribute | NormalAttribute | UVAttribute | ColorAttribute
)

var attributeNames = []struct {
	attr Attribute
	name string
}{
	{VertexAttribute, "vertex"},
	{NormalAttribute, "normal"},
	{UVAttribute, "uv"},
	{ColorAttribute, "color"},
}

// Has returns true if all bits of attr are set.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr && attr != 0
}

func (a Attribute) String() string {
	var names []string
	for _, entry := range attributeNames {
		if a.Has(entry.attr) {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Parse a single attribute name.
func ParseAttribute(name string) (Attribute, error) {
	for _, entry := range attributeNames {
		if entry.name == strings.ToLower(name) {
			return entry.attr, nil
		}
	}
	return 0, fmt.Errorf("compressor: unknown attribute %q", name)
}

// Options controls a compression pass.
type Options struct {
	Attributes Attribute
	Mode       codec.Mode
	Bytes      int
}

// The options used when none are specified: 3-byte quantization of vertex
// positions.
func DefaultOptions() Options {
	return Options{
		Attributes: VertexAttribute,
		Mode:       codec.Quantization,
		Bytes:      codec.MaxBytes,
	}
}

// Set the quantization width, clamped to the supported range.
func (o *Options) SetBytes(bytes int) {
	o.Bytes = codec.ClampBytes(bytes)
}

func (o Options) String() string {
	return fmt.Sprintf("attributes=%s mode=%s bytes=%d", o.Attributes, o.Mode, o.Bytes)
}

// ParseOptions parses a whitespace separated option string such as
// "vertex normal uv prediction quantization=2". Attributes and modes start
// cleared; a bare "quantization" selects the smallest width.
func ParseOptions(options string) (Options, error) {
	opts := Options{Bytes: codec.MinBytes}
	for _, token := range strings.Fields(options) {
		key, value, hasValue := strings.Cut(token, "=")
		switch strings.ToLower(key) {
		case "vertex", "normal", "uv", "color":
			attr, _ := ParseAttribute(key)
			opts.Attributes |= attr
		case "prediction":
			opts.Mode |= codec.Prediction
		case "quantization":
			opts.Mode |= codec.Quantization
			bytes := 0
			if hasValue {
				var err error
				if bytes, err = strconv.Atoi(value); err != nil {
					return opts, fmt.Errorf("compressor: invalid quantization width %q", value)
				}
			}
			opts.SetBytes(bytes)
		default:
			return opts, fmt.Errorf("compressor: unknown option %q", token)
		}
	}
	return opts, nil
}
