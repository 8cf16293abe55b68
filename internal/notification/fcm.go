package notification

import (
	"context"
	"fmt"
	"log"
	"strings"

	"firebase.google.com/go/v4/messaging"

	"github.com/nmoralesv/event-night-backend/utils"
)

// FCMChannel implements Channel over Firebase Cloud Messaging.
type FCMChannel struct {
	client *messaging.Client
	ctx    context.Context
}

// NewFCMChannel wires the shared Firebase messaging client. The client is
// nil when Firebase was never configured; Send reports that as an error.
func NewFCMChannel() Channel {
	return &FCMChannel{
		client: utils.GetFCMClient(),
		ctx:    context.Background(),
	}
}

// isValidToken filters out values that cannot be FCM registration tokens
// before they poison a multicast batch.
func isValidToken(token string) bool {
	token = strings.TrimSpace(token)
	if len(token) < 20 {
		return false
	}
	if strings.ContainsAny(token, " \t\n") {
		return false
	}
	return true
}

// Send delivers a push notification to every valid device token.
func (f *FCMChannel) Send(recipients []string, title, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	var tokens []string
	for _, t := range recipients {
		if isValidToken(t) {
			tokens = append(tokens, strings.TrimSpace(t))
		} else {
			log.Printf("⚠️ Skipping malformed device token (%d chars)", len(t))
		}
	}

	if len(tokens) == 0 {
		return fmt.Errorf("no valid FCM tokens provided")
	}

	if len(tokens) == 1 {
		return f.sendSingle(tokens[0], title, body)
	}
	return f.sendMulticast(tokens, title, body)
}

func (f *FCMChannel) sendSingle(token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "night_updates",
				Priority:     messaging.PriorityHigh,
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
	}

	response, err := f.client.Send(f.ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("✅ FCM message sent successfully: %s\n", response)
	return nil
}

func (f *FCMChannel) sendMulticast(tokens []string, title, body string) error {
	// FCM allows max 500 tokens per multicast
	batchSize := 500
	var failedTokens []string
	successCount := 0

	for i := 0; i < len(tokens); i += batchSize {
		end := i + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}

		batch := tokens[i:end]
		message := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:        "default",
					ChannelID:    "night_updates",
					Priority:     messaging.PriorityHigh,
					DefaultSound: true,
				},
			},
			APNS: &messaging.APNSConfig{
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
						Badge: intPtr(1),
					},
				},
			},
		}

		response, err := f.client.SendMulticast(f.ctx, message)
		if err != nil {
			log.Printf("❌ Error sending FCM multicast batch: %v\n", err)
			failedTokens = append(failedTokens, batch...)
			continue
		}

		successCount += response.SuccessCount
		log.Printf("✅ FCM multicast: %d/%d messages sent successfully\n",
			response.SuccessCount, len(batch))

		if response.FailureCount > 0 {
			for idx, resp := range response.Responses {
				if !resp.Success {
					failedTokens = append(failedTokens, batch[idx])
					log.Printf("❌ Failed to send to token %s: %v\n",
						batch[idx][:20]+"...", resp.Error)
				}
			}
		}
	}

	if len(failedTokens) > 0 {
		return fmt.Errorf("failed to send to %d/%d tokens", len(failedTokens), len(tokens))
	}

	log.Printf("✅ All FCM messages sent: %d tokens\n", successCount)
	return nil
}

func intPtr(i int) *int {
	return &i
}
