// Package config loads compression profiles from YAML documents such as:
//
//	attributes: [vertex, normal, uv]
//	prediction: true
//	quantization: 2
//	stripify: true
//	container: zstd
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/marchelbling/osg/asset"
	"github.com/marchelbling/osg/asset/compressor"
	"github.com/marchelbling/osg/asset/scene/container"
	"github.com/marchelbling/osg/codec"
	"gopkg.in/yaml.v3"
)

// Profile describes how a scene gets compressed.
type Profile struct {
	// Attribute names: vertex, normal, uv or color.
	Attributes []string `yaml:"attributes"`

	Prediction bool `yaml:"prediction"`

	// Quantization byte width; 0 disables quantization.
	Quantization int `yaml:"quantization"`

	// Convert triangle lists into strips before compressing.
	Stripify bool `yaml:"stripify"`

	// Block compression of the written scene: none, lz4 or zstd.
	Container string `yaml:"container"`
}

// Default returns the profile used when no profile file is given.
func Default() *Profile {
	return &Profile{
		Attributes:   []string{"vertex"},
		Quantization: codec.MaxBytes,
		Container:    "zstd",
	}
}

// Load a profile from a local path or URL. Keys missing from the document
// keep their default value; unknown keys are rejected.
func Load(path string) (*Profile, error) {
	data, err := asset.ReadResource(path, nil)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse a YAML profile document.
func Parse(data []byte) (*Profile, error) {
	profile := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(profile); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: could not parse profile: %w", err)
	}
	if _, err := profile.ContainerMethod(); err != nil {
		return nil, err
	}
	if _, err := profile.Options(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Options converts the profile into compressor options.
func (p *Profile) Options() (compressor.Options, error) {
	opts := compressor.Options{Bytes: codec.MinBytes}
	for _, name := range p.Attributes {
		attr, err := compressor.ParseAttribute(name)
		if err != nil {
			return opts, fmt.Errorf("config: %w", err)
		}
		opts.Attributes |= attr
	}
	if p.Prediction {
		opts.Mode |= codec.Prediction
	}
	if p.Quantization < 0 {
		return opts, fmt.Errorf("config: invalid quantization width %d", p.Quantization)
	}
	if p.Quantization > 0 {
		opts.Mode |= codec.Quantization
		opts.SetBytes(p.Quantization)
	}
	return opts, nil
}

// ContainerMethod returns the block compression method of the profile.
func (p *Profile) ContainerMethod() (container.Method, error) {
	method, err := container.ParseMethod(p.Container)
	if err != nil {
		return method, fmt.Errorf("config: %w", err)
	}
	return method, nil
}
