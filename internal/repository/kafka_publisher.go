package repository

import (
	"context"

	"DelistRadar/internal/domain/models"
	drepo "DelistRadar/internal/domain/repository"
	pkgkafka "DelistRadar/pkg/kafka"
)

// KafkaAlertPublisher fans alerts out to a Kafka topic keyed by source,
// so one source's alerts stay ordered within a partition.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAlertPublisher creates a Kafka-backed AlertPublisher.
func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) drepo.AlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, a *models.Alert) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.Source), a)
}

func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}

// NopAlertPublisher is used when Kafka fan-out is disabled.
type NopAlertPublisher struct{}

func (NopAlertPublisher) Publish(ctx context.Context, a *models.Alert) error { return nil }
func (NopAlertPublisher) Close() error                                       { return nil }
