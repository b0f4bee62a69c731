package testutil

import (
	"context"
	"sync"

	"github.com/neftit-lab/backend/pkg/pubsub"
)

type PublishedPack struct {
	Topic string
	Pack  *pubsub.Pack
}

// MockPublisher records every published message unless PublishFunc is set.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mutex     sync.Mutex
	Published []PublishedPack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Published = append(m.Published, PublishedPack{Topic: topic, Pack: pack})
	return nil
}

func (m *MockPublisher) Topics() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	topics := []string{}
	for _, p := range m.Published {
		topics = append(topics, p.Topic)
	}

	return topics
}
