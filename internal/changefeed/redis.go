package changefeed

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisFeed carries change signals over Redis pub/sub so that every backend
// replica sees writes made by any of them.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func channelFor(table string) string {
	return "changefeed:" + table
}

// Publish emits the signal on the table's channel
func (f *RedisFeed) Publish(ctx context.Context, sig Signal) error {
	payload, err := json.Marshal(sig)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, channelFor(sig.Table), payload).Err()
}

// Subscribe opens a dedicated pub/sub connection for the table and pumps
// matching signals into fn until the subscription is closed.
func (f *RedisFeed) Subscribe(ctx context.Context, table string, eventID *uint, fn func(Signal)) (*Subscription, error) {
	ps := f.client.Subscribe(ctx, channelFor(table))

	// Force the SUBSCRIBE round-trip so a broken connection surfaces here
	// instead of as a silent dead feed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	msgs := ps.Channel()
	done := make(chan struct{})

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var sig Signal
				if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil {
					log.Printf("⚠️  changefeed: dropping malformed signal on %s: %v", msg.Channel, err)
					continue
				}
				if matches(sig, table, eventID) {
					fn(sig)
				}
			case <-done:
				return
			}
		}
	}()

	return &Subscription{
		id:    uuid.NewString(),
		table: table,
		stop: func() {
			close(done)
			_ = ps.Close()
		},
	}, nil
}
