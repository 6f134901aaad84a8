package container

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestBlockRoundTrip(t *testing.T) {
	compressible := []byte(strings.Repeat("v 0.000000 1.000000 0.000000\n", 200))
	random := make([]byte, 4096)
	rand.New(rand.NewSource(3)).Read(random)

	for _, method := range []Method{None, LZ4, Zstd} {
		codec, err := CodecFor(method)
		if err != nil {
			t.Fatal(err)
		}

		for idx, payload := range [][]byte{compressible, random, {}} {
			block, err := EncodeBlock(codec, payload)
			if err != nil {
				t.Fatalf("[%s payload %d] %v", method, idx, err)
			}

			out, err := DecodeBlock(block)
			if err != nil {
				t.Fatalf("[%s payload %d] %v", method, idx, err)
			}
			if !bytes.Equal(out, payload) {
				t.Fatalf("[%s payload %d] expected decoded block to match the input", method, idx)
			}
		}
	}
}

func TestBlockHeader(t *testing.T) {
	payload := []byte(strings.Repeat("abcd", 512))
	codec, _ := CodecFor(LZ4)
	block, err := EncodeBlock(codec, payload)
	if err != nil {
		t.Fatal(err)
	}

	method, totalSize, rawSize, err := ReadHeader(block)
	if err != nil {
		t.Fatal(err)
	}
	if method != LZ4 {
		t.Fatalf("expected method %s; got %s", LZ4, method)
	}
	if int(totalSize) != len(block) {
		t.Fatalf("expected total size %d; got %d", len(block), totalSize)
	}
	if int(rawSize) != len(payload) {
		t.Fatalf("expected raw size %d; got %d", len(payload), rawSize)
	}
	if len(block) >= len(payload) {
		t.Fatalf("expected repetitive payload to shrink; got %d bytes for %d", len(block), len(payload))
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	random := make([]byte, 256)
	rand.New(rand.NewSource(9)).Read(random)

	for _, method := range []Method{LZ4, Zstd} {
		codec, _ := CodecFor(method)
		block, err := EncodeBlock(codec, random)
		if err != nil {
			t.Fatal(err)
		}
		if Method(block[0]) != None {
			t.Fatalf("[%s] expected incompressible payload to be stored raw; got method %s", method, Method(block[0]))
		}
	}
}

func TestDecodeBlockErrors(t *testing.T) {
	type spec struct {
		block  []byte
		expErr string
	}
	specs := []spec{
		{[]byte{0x02, 0}, "container: block too small: 2 bytes"},
		{[]byte{0x02, 100, 0, 0, 0, 0, 0, 0, 0}, "container: block size mismatch: header says 100, have 9"},
		{[]byte{0x42, 9, 0, 0, 0, 0, 0, 0, 0}, "container: unknown compression method 0x42"},
	}

	for idx, s := range specs {
		_, err := DecodeBlock(s.block)
		if err == nil || err.Error() != s.expErr {
			t.Fatalf("[spec %d] expected error %q; got %v", idx, s.expErr, err)
		}
	}
}

func TestParseMethod(t *testing.T) {
	type spec struct {
		in     string
		exp    Method
		expErr bool
	}
	specs := []spec{
		{"", None, false},
		{"none", None, false},
		{"LZ4", LZ4, false},
		{" zstd", Zstd, false},
		{"brotli", None, true},
	}
	for idx, s := range specs {
		method, err := ParseMethod(s.in)
		if s.expErr != (err != nil) {
			t.Fatalf("[spec %d] expected error to be %t; got %v", idx, s.expErr, err)
		}
		if method != s.exp {
			t.Fatalf("[spec %d] expected method %s; got %s", idx, s.exp, method)
		}
	}
}
