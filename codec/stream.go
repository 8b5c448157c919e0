package codec

import "context"

// Subscriber is the minimal Reactive Streams consumer contract (spec.md
// §1: "a minimal reactive-streams gRPC transport"). A Publisher calls
// OnNext for each item, then exactly one of OnComplete or OnError.
// Implementations must not block indefinitely in OnNext; backpressure is
// expressed by the context passed to Subscribe, not by a separate
// request(n) call, since the Go idiom for this is cooperative
// cancellation rather than the Java reactive-streams Subscription type.
type Subscriber[T any] interface {
	OnNext(item T) error
	OnComplete()
	OnError(err error)
}

// Publisher produces a stream of T to a Subscriber. rpc builds its
// server-streaming Connect/gRPC handler on top of this: the handler is a
// Publisher whose OnNext pushes a PBJ-encoded message to the wire.
type Publisher[T any] interface {
	Subscribe(ctx context.Context, sub Subscriber[T]) error
}

// FuncSubscriber adapts three plain functions into a Subscriber, the
// common case of "just drain a stream into a channel or a slice" that
// gateway and rpc both need.
type FuncSubscriber[T any] struct {
	Next     func(T) error
	Complete func()
	Err      func(error)
}

func (f FuncSubscriber[T]) OnNext(item T) error {
	if f.Next != nil {
		return f.Next(item)
	}
	return nil
}

func (f FuncSubscriber[T]) OnComplete() {
	if f.Complete != nil {
		f.Complete()
	}
}

func (f FuncSubscriber[T]) OnError(err error) {
	if f.Err != nil {
		f.Err(err)
	}
}

// SlicePublisher publishes a fixed, already-materialised slice of items;
// useful for tests and for bridging a fully-buffered response into the
// Publisher contract.
type SlicePublisher[T any] struct {
	Items []T
}

func (p SlicePublisher[T]) Subscribe(ctx context.Context, sub Subscriber[T]) error {
	for _, item := range p.Items {
		select {
		case <-ctx.Done():
			sub.OnError(ctx.Err())
			return ctx.Err()
		default:
		}
		if err := sub.OnNext(item); err != nil {
			sub.OnError(err)
			return err
		}
	}
	sub.OnComplete()
	return nil
}

// ChanPublisher adapts a receive channel (e.g. fed by a goroutine decoding
// frames off a connect.ServerStream) into a Publisher.
type ChanPublisher[T any] struct {
	Items <-chan T
	Errs  <-chan error
}

func (p ChanPublisher[T]) Subscribe(ctx context.Context, sub Subscriber[T]) error {
	for {
		select {
		case <-ctx.Done():
			sub.OnError(ctx.Err())
			return ctx.Err()
		case err, ok := <-p.Errs:
			if ok && err != nil {
				sub.OnError(err)
				return err
			}
		case item, ok := <-p.Items:
			if !ok {
				sub.OnComplete()
				return nil
			}
			if err := sub.OnNext(item); err != nil {
				sub.OnError(err)
				return err
			}
		}
	}
}
