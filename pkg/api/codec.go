// Package api defines the wire messages of the sharezin Connect services and
// the JSON codec they are exchanged with.
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// CodecName is registered as the "json" codec, replacing Connect's protobuf JSON codec.
const CodecName = "json"

// Codec marshals plain Go message structs as JSON.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return b, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithCodec is the handler and client option every sharezin endpoint uses.
func WithCodec() connect.Option {
	return connect.WithCodec(Codec{})
}
