package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/hashgraph/pbj-go/codec"
	"github.com/hashgraph/pbj-go/gen"
)

var timestampCodec = NewCodec(gen.ParseTimestamp, gen.WriteTimestamp)

// TimestampStore is the minimal persistence hook TimestampService needs;
// a gateway or test can back it with anything from a map to a database.
type TimestampStore interface {
	Put(ctx context.Context, t gen.Timestamp) error
	History(ctx context.Context) ([]gen.Timestamp, error)
}

// TimestampService exposes one unary RPC (Put, mirroring an Echo/ack) and
// one server-streaming RPC (History) over gen.Timestamp, the same
// unary+stream pair spec.md's "minimal reactive-streams gRPC transport"
// calls for, built on connect instead of a protoc-generated service.
type TimestampService struct {
	store TimestampStore
}

func NewTimestampService(store TimestampStore) *TimestampService {
	return &TimestampService{store: store}
}

const (
	timestampPutProcedure     = "/pbj.rpc.TimestampService/Put"
	timestampHistoryProcedure = "/pbj.rpc.TimestampService/History"
)

func (s *TimestampService) putHandler() func(context.Context, *connect.Request[EnvelopeRequest]) (*connect.Response[EnvelopeResponse], error) {
	return UnaryHandler(timestampCodec, timestampCodec, func(ctx context.Context, req gen.Timestamp) (gen.Timestamp, error) {
		if err := s.store.Put(ctx, req); err != nil {
			return gen.Timestamp{}, err
		}
		return req, nil
	})
}

func (s *TimestampService) historyHandler(ctx context.Context, _ *connect.Request[EnvelopeRequest], stream *connect.ServerStream[EnvelopeResponse]) error {
	items, err := s.store.History(ctx)
	if err != nil {
		return connect.NewError(connect.CodeInternal, err)
	}
	pub := codec.SlicePublisher[gen.Timestamp]{Items: items}
	return StreamHandler(ctx, timestampCodec, pub, stream)
}

// Mux returns an http.Handler serving TimestampService on a plain
// net/http mux, usable directly or mounted under a chi router (package
// gateway does not mount it).
func (s *TimestampService) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(timestampPutProcedure, connect.NewUnaryHandler(timestampPutProcedure, s.putHandler(), WithEnvelopeCodec()))
	mux.Handle(timestampHistoryProcedure, connect.NewServerStreamHandler(timestampHistoryProcedure, s.historyHandler, WithEnvelopeCodec()))
	return mux
}

// Serve starts an h2c (cleartext HTTP/2) listener so gRPC and
// gRPC-Web clients can reach TimestampService without TLS termination in
// front of it, matching how local development talks to connect services.
func (s *TimestampService) Serve(lis net.Listener) error {
	h2s := &http2.Server{}
	handler := h2c.NewHandler(s.Mux(), h2s)
	if err := http.Serve(lis, handler); err != nil {
		return fmt.Errorf("rpc: serve: %w", err)
	}
	return nil
}
