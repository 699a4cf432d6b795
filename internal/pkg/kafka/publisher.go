package kafka

import (
	"Murmur/internal/api/config"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// SaramaPublisher 同步发送事件，按 TargetID 分区保证同一对象的事件有序
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if len(cfg.Brokers) == 0 {
		log.Info("Kafka brokers not configured, domain events disabled")
		return NopPublisher{}, nil
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewSaramaPublisher(producer, cfg.Topic), nil
}

func NewSaramaPublisher(producer sarama.SyncProducer, topic string) *SaramaPublisher {
	return &SaramaPublisher{producer: producer, topic: topic}
}

func (s *SaramaPublisher) Publish(ctx context.Context, event *Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.Wrapf(err, "marshal event %s", event.Type)
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.TargetID, 10)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "publish event %s", event.Type)
	}

	log.DebugContext(ctx, "event published",
		"type", event.Type,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (s *SaramaPublisher) Close() error {
	return s.producer.Close()
}

// NopPublisher 未配置 Kafka 时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) error { return nil }

func (NopPublisher) Close() error { return nil }
