// Package json wraps JSON serialization for the Atlas platform.
// It uses sonic on amd64/arm64 and falls back to encoding/json elsewhere,
// so callers never need to care which engine is active.
package json

import (
	stdjson "encoding/json"
	"io"
	"runtime"

	"github.com/bytedance/sonic"
)

var (
	// Marshal encodes v into JSON bytes.
	Marshal func(v interface{}) ([]byte, error)

	// Unmarshal decodes JSON bytes into v.
	Unmarshal func(data []byte, v interface{}) error

	// MarshalString encodes v into a JSON string.
	MarshalString func(v interface{}) (string, error)

	// UnmarshalString decodes a JSON string into v.
	UnmarshalString func(data string, v interface{}) error

	// NewEncoder creates a new JSON encoder for the writer.
	NewEncoder func(w io.Writer) Encoder

	// NewDecoder creates a new JSON decoder for the reader.
	NewDecoder func(r io.Reader) Decoder

	// usingSonic indicates whether sonic is being used.
	usingSonic bool
)

// Encoder is a JSON encoder interface.
type Encoder interface {
	Encode(v interface{}) error
}

// Decoder is a JSON decoder interface.
type Decoder interface {
	Decode(v interface{}) error
}

func init() {
	// Sonic only supports amd64 and arm64 architectures
	if runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64" {
		api := sonic.ConfigDefault
		Marshal = api.Marshal
		Unmarshal = api.Unmarshal
		MarshalString = api.MarshalToString
		UnmarshalString = api.UnmarshalFromString
		NewEncoder = func(w io.Writer) Encoder {
			return api.NewEncoder(w)
		}
		NewDecoder = func(r io.Reader) Decoder {
			return api.NewDecoder(r)
		}
		usingSonic = true
	} else {
		Marshal = stdjson.Marshal
		Unmarshal = stdjson.Unmarshal
		MarshalString = func(v interface{}) (string, error) {
			b, err := stdjson.Marshal(v)
			return string(b), err
		}
		UnmarshalString = func(data string, v interface{}) error {
			return stdjson.Unmarshal([]byte(data), v)
		}
		NewEncoder = func(w io.Writer) Encoder {
			return stdjson.NewEncoder(w)
		}
		NewDecoder = func(r io.Reader) Decoder {
			return stdjson.NewDecoder(r)
		}
		usingSonic = false
	}
}

// IsUsingSonic returns true if sonic is the active JSON engine.
func IsUsingSonic() bool {
	return usingSonic
}
