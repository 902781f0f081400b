package notif

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gochat/internal/config"
	"gochat/internal/metrics"
)

// PushClient is the subset of *messaging.Client the fan-out drives.
type PushClient interface {
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
	UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Payload is the user-visible part of a push plus its data map.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Fanout delivers one payload to many device tokens through a throwaway topic, so a single
// send reaches every device regardless of how many tokens there are.
type Fanout struct {
	client      PushClient
	batchSize   int
	sound       string
	channelID   string
	topicPrefix string
}

func NewFanout(client PushClient, cfg *config.Config) *Fanout {
	batch := cfg.Notification.TopicBatchSize
	if batch < 1 || batch > 1000 {
		batch = 1000
	}
	return &Fanout{
		client:      client,
		batchSize:   batch,
		sound:       cfg.Notification.Sound,
		channelID:   cfg.Notification.AndroidChannelID,
		topicPrefix: "chat-",
	}
}

// Notify pushes the payload to the distinct tokens. Provider failures are logged and swallowed.
func (f *Fanout) Notify(ctx context.Context, tokens []string, payload Payload) {
	tokens = dedupe(tokens)
	if len(tokens) == 0 {
		return
	}
	if f.client == nil {
		metrics.PushTotal.WithLabelValues("disabled").Inc()
		log.Debug().Int("tokens", len(tokens)).Msg("push client not configured, skipping fan-out")
		return
	}

	topic := f.topicPrefix + uuid.NewString()
	chunks := chunk(tokens, f.batchSize)

	subscribed := make([][]string, 0, len(chunks))
	for _, c := range chunks {
		resp, err := f.client.SubscribeToTopic(ctx, c, topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Int("tokens", len(c)).Msg("failed to subscribe tokens to topic")
			continue
		}
		if resp != nil && resp.FailureCount > 0 {
			log.Warn().Str("topic", topic).Int("failures", resp.FailureCount).Msg("some tokens were not subscribed")
		}
		subscribed = append(subscribed, c)
	}
	if len(subscribed) == 0 {
		metrics.PushTotal.WithLabelValues("failed").Inc()
		return
	}

	if _, err := f.client.Send(ctx, f.message(topic, payload)); err != nil {
		metrics.PushTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("topic", topic).Msg("failed to send push")
	} else {
		metrics.PushTotal.WithLabelValues("sent").Inc()
	}

	for _, c := range subscribed {
		if _, err := f.client.UnsubscribeFromTopic(ctx, c, topic); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to unsubscribe tokens from topic")
		}
	}
}

func (f *Fanout) message(topic string, payload Payload) *messaging.Message {
	data := make(map[string]string, len(payload.Data)+2)
	for k, v := range payload.Data {
		data[k] = v
	}
	data["title"] = payload.Title
	data["body"] = payload.Body

	return &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     f.sound,
				ChannelID: f.channelID,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: f.sound},
			},
		},
	}
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func chunk(tokens []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(tokens); start += size {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		out = append(out, tokens[start:end])
	}
	return out
}
