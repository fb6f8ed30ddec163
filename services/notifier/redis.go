package notifier

import (
	"context"
	"encoding/base64"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes alerts onto a Redis stream for downstream
// consumers (bots, dashboards). The alert body is base64 encoded before
// publishing.
type RedisNotifier struct {
	client    *redis.Client
	ctx       context.Context
	stream    string
	maxLength int
}

// NewRedisNotifier creates a new Redis stream notifier
func NewRedisNotifier(ctx context.Context, addr string, db int, stream string, maxLength int) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisNotifier{
		client:    client,
		ctx:       ctx,
		stream:    stream,
		maxLength: maxLength,
	}
}

// Notify publishes the alert to the stream and trims it to the configured
// maximum length. The recipient is carried as a field for consumers that
// route alerts onward.
func (n *RedisNotifier) Notify(subject, body, recipient string) error {
	encodedBody := base64.StdEncoding.EncodeToString([]byte(body))

	err := n.client.XAdd(n.ctx, &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{
			"subject":   subject,
			"b64_body":  encodedBody,
			"recipient": recipient,
		},
	}).Err()
	if err != nil {
		return err
	}

	return n.client.XTrimMaxLen(n.ctx, n.stream, int64(n.maxLength)).Err()
}

// Close closes the Redis connection
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
