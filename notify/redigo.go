package notify

import (
	"encoding/json"

	"github.com/gomodule/redigo/redis"
)

// RedigoSink publishes events through a redigo connection pool, a third
// interchangeable backend for environments already standardized on redigo
// rather than either go-redis client generation.
type RedigoSink struct {
	pool    *redis.Pool
	channel string
}

// NewRedigoSink builds a sink publishing to channel over pool.
func NewRedigoSink(pool *redis.Pool, channel string) *RedigoSink {
	return &RedigoSink{pool: pool, channel: channel}
}

// Publish implements Sink.
func (s *RedigoSink) Publish(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	conn := s.pool.Get()
	defer conn.Close()
	_, err = conn.Do("PUBLISH", s.channel, payload)
	return err
}

// Close implements Sink.
func (s *RedigoSink) Close() error {
	return s.pool.Close()
}
