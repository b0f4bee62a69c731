package pubsub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/neftit-lab/backend/pkg/xcontext"
)

type SubscribeHandler func(context.Context, *Pack)

// Broker is an in-process Publisher. Handlers run synchronously in the publishing goroutine, in
// the order they subscribed.
type Broker struct {
	mutex    sync.RWMutex
	handlers map[string][]*subscription
}

type subscription struct {
	handler SubscribeHandler
}

func NewBroker() *Broker {
	return &Broker{handlers: make(map[string][]*subscription)}
}

func (b *Broker) Publish(ctx context.Context, topic string, pack *Pack) error {
	b.mutex.RLock()
	subs := append([]*subscription{}, b.handlers[topic]...)
	b.mutex.RUnlock()

	for _, s := range subs {
		s.handler(ctx, pack)
	}

	return nil
}

// SubscribeRaw registers handler on topic and returns a function removing it.
func (b *Broker) SubscribeRaw(topic string, handler SubscribeHandler) func() {
	s := &subscription{handler: handler}

	b.mutex.Lock()
	b.handlers[topic] = append(b.handlers[topic], s)
	b.mutex.Unlock()

	return func() {
		b.mutex.Lock()
		defer b.mutex.Unlock()

		subs := b.handlers[topic]
		for i := range subs {
			if subs[i] == s {
				b.handlers[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribe registers a typed handler on topic. Messages which cannot be decoded into T are
// logged and skipped.
func Subscribe[T any](b *Broker, topic Topic[T], handler func(context.Context, T)) func() {
	return b.SubscribeRaw(string(topic), func(ctx context.Context, pack *Pack) {
		var payload T
		if err := json.Unmarshal(pack.Msg, &payload); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot decode message of topic %s: %v", topic, err)
			return
		}

		handler(ctx, payload)
	})
}

// Fanout publishes every message to all publishers and returns the first error.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, topic string, pack *Pack) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, topic, pack); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
