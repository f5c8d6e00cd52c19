// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownType is returned for codec types and file extensions nothing is
// registered for.
var ErrUnknownType = errors.New("codec: unknown type")

type registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

var defaultRegistry = &registry{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

var extensionTypes = map[string]Type{
	".json":    TypeJSON,
	".yaml":    TypeYAML,
	".yml":     TypeYAML,
	".toml":    TypeTOML,
	".msgpack": TypeMsgPack,
	".mpk":     TypeMsgPack,
	".cbor":    TypeCBOR,
}

// RegisterEncoder registers an encoder for the given type, replacing any
// encoder registered before.
func RegisterEncoder(name Type, encoder Encoder) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.encoders[name] = encoder
}

// RegisterDecoder registers a decoder for the given type, replacing any
// decoder registered before.
func RegisterDecoder(name Type, decoder Decoder) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.decoders[name] = decoder
}

// GetEncoder returns the encoder registered for name.
func GetEncoder(name Type) (Encoder, error) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	encoder, ok := defaultRegistry.encoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: no encoder for %q", ErrUnknownType, name)
	}

	return encoder, nil
}

// GetDecoder returns the decoder registered for name.
func GetDecoder(name Type) (Decoder, error) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	decoder, ok := defaultRegistry.decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %q", ErrUnknownType, name)
	}

	return decoder, nil
}

// EncoderTypes returns the registered encoder types, sorted.
func EncoderTypes() []Type {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	types := make([]Type, 0, len(defaultRegistry.encoders))
	for t := range defaultRegistry.encoders {
		types = append(types, t)
	}
	slices.Sort(types)

	return types
}

// TypeForPath detects the codec type from the extension of path.
func TypeForPath(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t, nil
	}

	return "", fmt.Errorf("%w: cannot detect format of %q", ErrUnknownType, path)
}
