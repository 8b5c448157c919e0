// Package rpc is the minimal reactive-streams gRPC transport mentioned in
// spec.md §1: a unary call and a server-streaming call that carry
// PBJ-encoded message bytes on the wire instead of protoc-generated
// request/response stubs. It is built directly on connectrpc.com/connect
// (which itself speaks gRPC, gRPC-Web and Connect's own protocol over
// plain net/http) rather than on .proto-generated service code, since the
// grammar parser and service-definition layer are out of scope (spec.md
// §1). codec.Publisher/Subscriber (spec.md's reactive-streams contract)
// sit between the wire and the handler.
package rpc

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/codec"
)

// Codec is the pair of functions a message type needs to ride the
// transport: encode a value to wire bytes, decode wire bytes to a value.
// service.go builds the one for gen.Timestamp from ParseTimestamp and
// WriteTimestamp.
type Codec[T any] struct {
	Encode func(v T) ([]byte, error)
	Decode func(raw []byte) (T, error)
}

// NewCodec adapts a pair of parse/write functions operating on
// buffer.Readable/buffer.Writable into a Codec.
func NewCodec[T any](
	parse func(buf buffer.Readable, cfg codec.ParseConfig) (T, error),
	write func(v T, buf buffer.Writable) error,
) Codec[T] {
	return Codec[T]{
		Encode: func(v T) ([]byte, error) {
			buf := buffer.Allocate(256)
			if err := write(v, buf); err != nil {
				return nil, err
			}
			return buf.ToBytes()[:buf.Position()], nil
		},
		Decode: func(raw []byte) (T, error) {
			return parse(buffer.Wrap(raw), codec.DefaultParseConfig())
		},
	}
}

// UnaryHandler adapts a Go function (Req) (Resp, error) into a
// connect.UnaryFunc operating on PBJ wire bytes, so a connect.Handler can
// be built for it without any protoc-generated service stub.
func UnaryHandler[Req, Resp any](
	reqCodec Codec[Req],
	respCodec Codec[Resp],
	handle func(ctx context.Context, req Req) (Resp, error),
) func(ctx context.Context, req *connect.Request[EnvelopeRequest]) (*connect.Response[EnvelopeResponse], error) {
	return func(ctx context.Context, req *connect.Request[EnvelopeRequest]) (*connect.Response[EnvelopeResponse], error) {
		decoded, err := reqCodec.Decode(req.Msg.Payload)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("decoding request payload: %w", err))
		}
		resp, err := handle(ctx, decoded)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		encoded, err := respCodec.Encode(resp)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("encoding response payload: %w", err))
		}
		return connect.NewResponse(&EnvelopeResponse{Payload: encoded}), nil
	}
}

// StreamHandler drains a codec.Publisher[Resp] into a
// connect.ServerStream, encoding each item with respCodec before writing
// it. It is the transport-level counterpart of codec.SlicePublisher /
// codec.ChanPublisher: callers build a Publisher over application data and
// this function is what actually pushes bytes to the wire.
func StreamHandler[Resp any](
	ctx context.Context,
	respCodec Codec[Resp],
	pub codec.Publisher[Resp],
	stream *connect.ServerStream[EnvelopeResponse],
) error {
	sub := codec.FuncSubscriber[Resp]{
		Next: func(item Resp) error {
			encoded, err := respCodec.Encode(item)
			if err != nil {
				return fmt.Errorf("encoding stream item: %w", err)
			}
			return stream.Send(&EnvelopeResponse{Payload: encoded})
		},
	}
	return pub.Subscribe(ctx, sub)
}
