package manifest

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sync"
)

// Decoder turns a manifest entry's inline content string into bytes.
type Decoder func(content string) ([]byte, error)

var (
	mu       sync.RWMutex
	decoders = map[string]Decoder{}
)

// Register ties a decoder to an encoding key and should be called for each
// supported encoding during app init.
func Register(encoding string, decode Decoder) {
	mu.Lock()
	decoders[encoding] = decode
	mu.Unlock()
}

// GetDecoder picks the right decoder for the encoding key. All expected
// encodings should be registered with [Register] before calling this
// function.
func GetDecoder(encoding string) (Decoder, error) {
	mu.RLock()
	d, ok := decoders[encoding]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no decoder for encoding %q", encoding)
	}
	return d, nil
}

// RegisterBuiltins registers the built-in content encodings: raw (the
// content string taken verbatim), base64 and hex.
func RegisterBuiltins() {
	Register("raw", func(content string) ([]byte, error) {
		return []byte(content), nil
	})
	Register("base64", func(content string) ([]byte, error) {
		return base64.StdEncoding.DecodeString(content)
	})
	Register("hex", func(content string) ([]byte, error) {
		return hex.DecodeString(content)
	})
}
