package utils

import (
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/nmoralesv/event-night-backend/config"
)

// NewPushRequestReader builds the consumer for platform-originated push
// requests. Returns nil when Kafka is not configured; callers must treat a
// nil reader as "feature disabled".
func NewPushRequestReader(cfg *config.Config) *kafka.Reader {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("⚠️  Kafka not configured (KAFKA_BROKERS missing), push-request consumer disabled")
		return nil
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaPushTopic,
		GroupID: "event-night-backend",
	})

	log.Printf("✅ Kafka push-request consumer ready (topic=%s)", cfg.KafkaPushTopic)
	return reader
}
