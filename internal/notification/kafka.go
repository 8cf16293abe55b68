package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// StartKafkaConsumer drains push requests published by other platform
// services and broadcasts each one. Blocks until ctx is cancelled, so run
// it on its own goroutine. A nil reader (Kafka unconfigured) is a no-op.
func StartKafkaConsumer(ctx context.Context, reader *kafka.Reader, svc *Service) {
	if reader == nil {
		log.Println("⚠️ Kafka not configured, push-request consumer disabled")
		return
	}
	defer reader.Close()

	log.Printf("🔄 Kafka push-request consumer started on topic %s", reader.Config().Topic)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("✅ Kafka push-request consumer stopped")
				return
			}
			log.Printf("❌ Kafka read error: %v", err)
			continue
		}

		var req PushRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			log.Printf("⚠️ Dropping malformed push request at offset %d: %v", msg.Offset, err)
			continue
		}
		if req.Title == "" || req.Body == "" {
			log.Printf("⚠️ Dropping push request with empty title/body at offset %d", msg.Offset)
			continue
		}

		if _, err := svc.BroadcastPush(ctx, &req, nil, "kafka"); err != nil {
			log.Printf("❌ Queue-driven push failed: %v", err)
		}
	}
}
