package rpc

import (
	"fmt"

	"connectrpc.com/connect"
)

// EnvelopeRequest and EnvelopeResponse carry an already-encoded PBJ
// message on the wire. They deliberately are not proto.Message: the
// payload bytes are themselves a complete wire-format encoding (spec.md
// §2), so wrapping them in a second protobuf layer would mean decoding
// twice. Instead envelopeCodec below teaches connect.NewUnaryHandler /
// connect.NewServerStreamHandler to move Payload verbatim.
type EnvelopeRequest struct {
	Payload []byte
}

type EnvelopeResponse struct {
	Payload []byte
}

// envelopeCodec implements connect.Codec for EnvelopeRequest/
// EnvelopeResponse by passing Payload through unchanged: the PBJ bytes
// produced by codec.Writer are already a self-describing wire format, so
// this codec's only job is to strip or add the one-field envelope struct
// around them.
type envelopeCodec struct{}

func (envelopeCodec) Name() string { return "pbj" }

func (envelopeCodec) Marshal(msg any) ([]byte, error) {
	switch m := msg.(type) {
	case *EnvelopeRequest:
		return m.Payload, nil
	case *EnvelopeResponse:
		return m.Payload, nil
	default:
		return nil, fmt.Errorf("rpc: envelopeCodec cannot marshal %T", msg)
	}
}

func (envelopeCodec) Unmarshal(data []byte, msg any) error {
	switch m := msg.(type) {
	case *EnvelopeRequest:
		m.Payload = append([]byte(nil), data...)
	case *EnvelopeResponse:
		m.Payload = append([]byte(nil), data...)
	default:
		return fmt.Errorf("rpc: envelopeCodec cannot unmarshal into %T", msg)
	}
	return nil
}

// WithEnvelopeCodec registers envelopeCodec under the "pbj" content-type
// subtype, for use as a connect.HandlerOption / connect.ClientOption on
// every handler and client this package builds.
func WithEnvelopeCodec() connect.Option {
	return connect.WithCodec(envelopeCodec{})
}
