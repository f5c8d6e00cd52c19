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

import "github.com/vmihailenco/msgpack/v5"

// TypeMsgPack is the "msgpack" codec type.
const TypeMsgPack Type = "msgpack"

func init() {
	RegisterEncoder(TypeMsgPack, MsgPackCodec{})
	RegisterDecoder(TypeMsgPack, MsgPackCodec{})
}

// MsgPackCodec implements MessagePack encoding and decoding.
type MsgPackCodec struct{}

// Encode encodes v as MessagePack.
func (MsgPackCodec) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode decodes MessagePack data into v.
func (MsgPackCodec) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
