package rpc_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"

	"github.com/hashgraph/pbj-go/gen"
	"github.com/hashgraph/pbj-go/rpc"
)

type memStore struct {
	items []gen.Timestamp
}

func (m *memStore) Put(_ context.Context, t gen.Timestamp) error {
	m.items = append(m.items, t)
	return nil
}

func (m *memStore) History(_ context.Context) ([]gen.Timestamp, error) {
	return m.items, nil
}

func TestTimestampServicePutAndHistory(t *testing.T) {
	store := &memStore{}
	svc := rpc.NewTimestampService(store)
	ts := httptest.NewServer(svc.Mux())
	defer ts.Close()

	client := connect.NewClient[rpc.EnvelopeRequest, rpc.EnvelopeResponse](
		ts.Client(), ts.URL+"/pbj.rpc.TimestampService/Put", rpc.WithEnvelopeCodec(),
	)

	encoded, err := rpc.NewCodec(gen.ParseTimestamp, gen.WriteTimestamp).Encode(gen.Timestamp{Seconds: 5678, Nanos: 1234})
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&rpc.EnvelopeRequest{Payload: encoded}))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(resp.Msg.Payload) == 0 {
		t.Fatalf("expected non-empty response payload")
	}
	if len(store.items) != 1 {
		t.Fatalf("store.items = %d, want 1", len(store.items))
	}
	if store.items[0].Seconds != 5678 || store.items[0].Nanos != 1234 {
		t.Fatalf("stored = %+v", store.items[0])
	}
}
