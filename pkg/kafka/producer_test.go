package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
		Topic:   "credit.events",
	})
	require.NotNil(t, p)
	assert.Equal(t, "credit.events", p.Topic())
	assert.Equal(t, 10*time.Millisecond, p.writer.BatchTimeout)
	assert.Equal(t, kafkago.RequireAll, p.writer.RequiredAcks)
}

func TestNewProducer_BatchTimeoutOverride(t *testing.T) {
	p := NewProducer(Config{
		Brokers:      []string{"localhost:9092"},
		Topic:        "credit.events",
		BatchTimeout: 250 * time.Millisecond,
	})
	assert.Equal(t, 250*time.Millisecond, p.writer.BatchTimeout)
}
