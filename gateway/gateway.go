// Package gateway is the HTTP JSON<->wire bridge (spec.md's pbjson layer
// exposed over HTTP): POST a message as canonical protobuf-JSON and get
// PBJ wire bytes back, or vice versa, plus a websocket stream of decoded
// messages. Routing follows go-chi/chi/v5's mux style; per-client rate
// limiting follows dgnsrekt/gexbot-downloader's golang.org/x/time/rate
// usage in internal/api/client.go; websocket fan-out follows
// mickamy/grpc-tap's broker.Broker non-blocking-subscriber pattern.
package gateway

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/codec"
	"github.com/hashgraph/pbj-go/gen"
	"github.com/hashgraph/pbj-go/pbjson"
)

var defaultParseConfig = codec.DefaultParseConfig()

func wrapBuf(raw []byte) buffer.Readable { return buffer.Wrap(raw) }

func encodeTimestamp(t gen.Timestamp) ([]byte, error) {
	buf := buffer.Allocate(gen.MeasureRecordTimestamp(t))
	if err := gen.WriteTimestamp(t, buf); err != nil {
		return nil, err
	}
	return buf.ToBytes(), nil
}

func encodeSample(s gen.Sample) ([]byte, error) {
	buf := buffer.Allocate(gen.MeasureRecordSample(s))
	if err := gen.WriteSample(s, buf); err != nil {
		return nil, err
	}
	return buf.ToBytes(), nil
}

// MessageCodec is the encode/decode/marshal/unmarshal quartet a message
// type needs to be served at /v1/messages/{type}.
type MessageCodec struct {
	DecodeWire func(raw []byte) (any, error)
	EncodeWire func(v any) ([]byte, error)
	MarshalJSON func(v any) ([]byte, error)
	UnmarshalJSON func(raw []byte) (any, error)
}

var registry = map[string]MessageCodec{
	"timestamp": {
		DecodeWire: func(raw []byte) (any, error) {
			return gen.ParseTimestamp(wrapBuf(raw), defaultParseConfig)
		},
		EncodeWire: func(v any) ([]byte, error) {
			return encodeTimestamp(v.(gen.Timestamp))
		},
		MarshalJSON: func(v any) ([]byte, error) {
			return pbjson.MarshalTimestamp(v.(gen.Timestamp)), nil
		},
		UnmarshalJSON: func(raw []byte) (any, error) {
			return pbjson.UnmarshalTimestamp(raw)
		},
	},
	"sample": {
		DecodeWire: func(raw []byte) (any, error) {
			return gen.ParseSample(wrapBuf(raw), defaultParseConfig)
		},
		EncodeWire: func(v any) ([]byte, error) {
			return encodeSample(v.(gen.Sample))
		},
		MarshalJSON: func(v any) ([]byte, error) {
			return pbjson.MarshalSample(v.(gen.Sample)), nil
		},
		UnmarshalJSON: func(raw []byte) (any, error) {
			return pbjson.UnmarshalSample(raw)
		},
	},
}

// Broker fans decoded messages out to websocket subscribers without
// blocking the publisher on a slow client, mirroring
// mickamy/grpc-tap/broker.Broker.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[int]chan streamEvent
	nextID      int
	bufSize     int
}

type streamEvent struct {
	Type string `json:"type"`
	JSON []byte `json:"-"`
}

func NewBroker(bufSize int) *Broker {
	return &Broker{subscribers: make(map[int]chan streamEvent), bufSize: bufSize}
}

func (b *Broker) subscribe() (<-chan streamEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan streamEvent, b.bufSize)
	b.subscribers[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(ch)
		}
	}
}

func (b *Broker) publish(ev streamEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Server is the chi-routed HTTP gateway.
type Server struct {
	router chi.Router
	broker *Broker
	logger *zap.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	ratePer  float64
	burst    int
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// New builds a Server rate-limited to ratePerSec requests/sec per remote
// address (burst tokens), logging via logger.
func New(logger *zap.Logger, ratePerSec float64, burst int) *Server {
	s := &Server{
		broker:   NewBroker(32),
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
		ratePer:  ratePerSec,
		burst:    burst,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.rateLimit)
	r.Route("/v1/messages/{type}", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)
		r.Post("/decode", s.handleDecode)
		r.Get("/stream", s.handleStream)
	})
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) limiterFor(remoteAddr string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[remoteAddr]
	if !ok {
		l = rate.NewLimiter(rate.Limit(s.ratePer), s.burst)
		s.limiters[remoteAddr] = l
	}
	return l
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiterFor(r.RemoteAddr).Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleEncode accepts canonical protobuf-JSON in the request body and
// responds with PBJ wire bytes.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	typ := chi.URLParam(r, "type")
	mc, ok := registry[typ]
	if !ok || mc.UnmarshalJSON == nil {
		http.Error(w, fmt.Sprintf("unknown message type %q", typ), http.StatusNotFound)
		return
	}
	body, err := readAll(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := mc.UnmarshalJSON(body)
	if err != nil {
		s.logger.Warn("encode: bad json", zap.String("request_id", reqID), zap.Error(err))
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	raw, err := mc.EncodeWire(v)
	if err != nil {
		s.logger.Error("encode failed", zap.String("request_id", reqID), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Request-Id", reqID)
	_, _ = w.Write(raw)
}

// handleDecode accepts PBJ wire bytes and responds with canonical
// protobuf-JSON.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	typ := chi.URLParam(r, "type")
	mc, ok := registry[typ]
	if !ok || mc.DecodeWire == nil || mc.MarshalJSON == nil {
		http.Error(w, fmt.Sprintf("unknown message type %q", typ), http.StatusNotFound)
		return
	}
	raw, err := readAll(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := mc.DecodeWire(raw)
	if err != nil {
		s.logger.Warn("decode: bad wire bytes", zap.String("request_id", reqID), zap.Error(err))
		http.Error(w, fmt.Sprintf("invalid wire bytes: %v", err), http.StatusBadRequest)
		return
	}
	out, err := mc.MarshalJSON(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.broker.publish(streamEvent{Type: typ, JSON: out})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", reqID)
	_, _ = w.Write(out)
}

// handleStream upgrades to a websocket and pushes every subsequently
// decoded message of the requested type as a JSON frame, until the client
// disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ch, unsub := s.broker.subscribe()
	defer unsub()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for ev := range ch {
		if ev.Type != typ {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, ev.JSON); err != nil {
			return
		}
	}
}

func readAll(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
