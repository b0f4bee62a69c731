package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shopify/sarama"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/pkg/pubsub"
)

// Publisher forwards packs to kafka, one topic per pubsub topic.
type Publisher struct {
	producer sarama.SyncProducer
}

func NewPublisher(cfg config.KafkaConfigs) (*Publisher, error) {
	brokers := []string{}
	for _, addr := range strings.Split(cfg.Addr, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			brokers = append(brokers, addr)
		}
	}
	if len(brokers) == 0 {
		return nil, errors.New("no kafka broker configured")
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.ClientID
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3
	saramaCfg.Producer.Retry.Backoff = 250 * time.Millisecond

	producer, err := sarama.NewSyncProducer(brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to kafka %v: %w", brokers, err)
	}

	return &Publisher{producer: producer}, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.ByteEncoder(pack.Key),
		Value:     sarama.ByteEncoder(pack.Msg),
		Timestamp: pack.Timestamp,
		Headers: []sarama.RecordHeader{
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("cannot send message to %s: %w", topic, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
