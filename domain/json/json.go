// Package json is the JSON codec used for contract queries, indexer responses and persisted state.
package json

import (
	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return codec.Marshal(v)
}

// Unmarshal parses the JSON-encoded data and stores the result in the value pointed to by v.
func Unmarshal(data []byte, v any) error {
	return codec.Unmarshal(data, v)
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return codec.Valid(data)
}

// MarshalIndent is like Marshal but applies Indent to format the output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return codec.MarshalIndent(v, prefix, indent)
}
