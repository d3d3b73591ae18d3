package notify

import (
	"encoding/json"

	redis "github.com/go-redis/redis/v7"
)

// RedisV7Sink publishes events via the v7 client, kept alongside
// RedisV8Sink for deployments still pinned to an older redis wire
// protocol/client combination; same Sink contract, different client.
type RedisV7Sink struct {
	client  *redis.Client
	channel string
}

// NewRedisV7Sink builds a sink publishing to channel over client.
func NewRedisV7Sink(client *redis.Client, channel string) *RedisV7Sink {
	return &RedisV7Sink{client: client, channel: channel}
}

// Publish implements Sink.
func (s *RedisV7Sink) Publish(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.client.Publish(s.channel, payload).Err()
}

// Close implements Sink.
func (s *RedisV7Sink) Close() error {
	return s.client.Close()
}
