package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(m *sarama.ProducerMessage) error {
		require.Equal(t, "nft.claimed", m.Topic)
		key, err := m.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "claim-1", string(key))
		require.Len(t, m.Headers, 1)
		require.Equal(t, "application/json", string(m.Headers[0].Value))
		return nil
	})
	producer.ExpectSendMessageAndFail(errors.New("leader not available"))

	p := &Publisher{producer: producer}
	pack := &pubsub.Pack{Key: []byte("claim-1"), Msg: []byte(`{}`), Timestamp: time.Now()}

	require.NoError(t, p.Publish(context.Background(), "nft.claimed", pack))
	require.ErrorContains(t, p.Publish(context.Background(), "nft.claimed", pack), "leader not available")
	require.NoError(t, p.Close())
}

func TestPublisher_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := &Publisher{producer: producer}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Publish(ctx, "nft.claimed", &pubsub.Pack{}), context.Canceled)
	require.NoError(t, p.Close())
}

func TestNewPublisher_NoBroker(t *testing.T) {
	_, err := NewPublisher(config.KafkaConfigs{Addr: " , "})
	require.Error(t, err)
}
