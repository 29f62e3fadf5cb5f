package rabbitmq

import (
	"testing"
	"time"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{URL: "not-a-url"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to RabbitMQ")
}

func TestPublish_WithoutChannel(t *testing.T) {
	c := &Client{queue: DefaultQueue}
	err := c.Publish("recipe.created", []byte(`{}`))
	assert.EqualError(t, err, "RabbitMQ channel is not available")
}

func TestClose_Idempotent(t *testing.T) {
	c := &Client{}
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := newPublishing("recipe.deleted", []byte(`{"recipe_id":1}`), now)

	assert.Equal(t, "application/json", p.ContentType)
	assert.Equal(t, "recipe.deleted", p.Type)
	assert.Equal(t, uint8(amqp.Persistent), p.DeliveryMode)
	assert.Equal(t, now, p.Timestamp)
	assert.JSONEq(t, `{"recipe_id":1}`, string(p.Body))
}
