package notify

import (
	"context"
	"encoding/json"

	redis "github.com/go-redis/redis/v8"
)

// RedisV8Sink publishes events to a redis pub/sub channel using the v8
// client, the primary invalidation-bus backend.
type RedisV8Sink struct {
	client  *redis.Client
	channel string
}

// NewRedisV8Sink builds a sink publishing to channel over client.
func NewRedisV8Sink(client *redis.Client, channel string) *RedisV8Sink {
	return &RedisV8Sink{client: client, channel: channel}
}

// Publish implements Sink.
func (s *RedisV8Sink) Publish(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.client.Publish(context.Background(), s.channel, payload).Err()
}

// Close implements Sink.
func (s *RedisV8Sink) Close() error {
	return s.client.Close()
}
