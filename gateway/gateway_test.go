package gateway_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/hashgraph/pbj-go/gateway"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := gateway.New(zaptest.NewLogger(t), 1000, 1000)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	encodeReq, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/messages/timestamp/encode",
		strings.NewReader(`{"seconds":"5678","nanos":1234}`))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(encodeReq)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("encode: status = %d", resp.StatusCode)
	}

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	wire := buf[:n]

	decodeReq, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/messages/timestamp/decode", bytes.NewReader(wire))
	if err != nil {
		t.Fatal(err)
	}
	resp2, err := ts.Client().Do(decodeReq)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("decode: status = %d", resp2.StatusCode)
	}
}

func TestUnknownMessageType404(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/messages/bogus/encode", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
