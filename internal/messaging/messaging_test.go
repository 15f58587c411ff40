package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/restaurants/internal/config"
)

func TestHeaderConversion(t *testing.T) {
	assert.Nil(t, toKafkaHeaders(nil))
	assert.Nil(t, fromKafkaHeaders(nil))

	headers := toKafkaHeaders(map[string]string{"event-type": "restaurant.created"})
	require.Len(t, headers, 1)
	assert.Equal(t, kafka.Header{Key: "event-type", Value: []byte("restaurant.created")}, headers[0])
	assert.Equal(t, map[string]string{"event-type": "restaurant.created"}, fromKafkaHeaders(headers))
}

func TestNoopClientWhenDisabled(t *testing.T) {
	cfg := config.Config{Messaging: config.Messaging{
		Enabled: false,
		Kafka:   config.Kafka{Topic: "restaurants.events"},
	}}

	client, err := NewClient(fxtest.NewLifecycle(t), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "restaurants.events", client.Topic())
	assert.NoError(t, client.Publish(context.Background(), []byte("k"), []byte("v"), nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = client.Consume(ctx, func(context.Context, Message) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
