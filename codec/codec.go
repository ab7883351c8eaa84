// Package codec serializes flattened representations to wire formats.
//
// All codecs produce deterministic output for equal input: map keys are
// always written in sorted order.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes values in one wire format.
type Codec interface {
	Name() string
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// UnknownFormatError is returned by ByName for an unregistered format.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format %q (available: %s)", e.Format, strings.Join(Names(), ", "))
}

var codecs = map[string]Codec{}

func register(c Codec) Codec {
	codecs[c.Name()] = c
	return c
}

var (
	jsonCodec    = register(jsonFormat{indent: "  "})
	msgpackCodec = register(msgpackFormat{})
	cborCodec    = register(newCBORFormat())
)

// JSON returns the indented JSON codec.
func JSON() Codec { return jsonCodec }

// MsgPack returns the MessagePack codec.
func MsgPack() Codec { return msgpackCodec }

// CBOR returns the canonical CBOR codec.
func CBOR() Codec { return cborCodec }

// ByName looks up a codec by format name, case-insensitively.
func ByName(name string) (Codec, error) {
	c, ok := codecs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownFormatError{Format: name}
	}
	return c, nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// --- JSON ---

type jsonFormat struct {
	indent string
}

func (jsonFormat) Name() string        { return "json" }
func (jsonFormat) ContentType() string { return "application/json" }

func (f jsonFormat) Marshal(v any) ([]byte, error) {
	if f.indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", f.indent)
}

func (jsonFormat) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// --- MessagePack ---

type msgpackFormat struct{}

func (msgpackFormat) Name() string        { return "msgpack" }
func (msgpackFormat) ContentType() string { return "application/msgpack" }

func (msgpackFormat) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode msgpack: %w", err)
	}
	return buf.Bytes(), nil
}

func (msgpackFormat) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode msgpack: %w", err)
	}
	return nil
}

// --- CBOR ---

type cborFormat struct {
	em cbor.EncMode
	dm cbor.DecMode
}

func newCBORFormat() cborFormat {
	em, err := cbor.EncOptions{Sort: cbor.SortCanonical}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: cbor encode mode: %v", err))
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: cbor decode mode: %v", err))
	}
	return cborFormat{em: em, dm: dm}
}

func (cborFormat) Name() string        { return "cbor" }
func (cborFormat) ContentType() string { return "application/cbor" }

func (f cborFormat) Marshal(v any) ([]byte, error) {
	data, err := f.em.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode cbor: %w", err)
	}
	return data, nil
}

func (f cborFormat) Unmarshal(data []byte, v any) error {
	if err := f.dm.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode cbor: %w", err)
	}
	return nil
}
