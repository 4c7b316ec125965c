package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(
	ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

var now = time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)

func TestPublisher_Publish_UsesChannelAsRoutingKey(t *testing.T) {
	ch := new(MockChannel)
	p := rabbitmq.NewPublisher(ch, "dispatch.notifications", ports.ClockFunc(func() time.Time { return now }))
	n := ports.Notification{
		Event:     "order.created",
		Payload:   map[string]any{"id": "42"},
		Message:   "New order",
		Timestamp: "2025-09-12T10:00:00.000Z",
	}

	var published amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "dispatch.notifications", "orders.riyadh", false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
		Return(nil).
		Once()

	require.NoError(t, p.Publish(t.Context(), "orders.riyadh", n))

	ch.AssertExpectations(t)
	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, "order.created", published.Type)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, now, published.Timestamp)

	var decoded ports.Notification
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	assert.Equal(t, n, decoded)
}

func TestPublisher_Publish_WrapsBrokerError(t *testing.T) {
	ch := new(MockChannel)
	p := rabbitmq.NewPublisher(ch, "x", ports.SystemClock)
	brokerErr := errors.New("channel closed")
	ch.On("PublishWithContext", mock.Anything, "x", "admin.drivers", false, false, mock.Anything).Return(brokerErr)

	err := p.Publish(t.Context(), "admin.drivers", ports.Notification{Event: "driver.status.updated"})
	require.ErrorIs(t, err, brokerErr)
	assert.Contains(t, err.Error(), "x/admin.drivers")
}

func TestPublisher_Close(t *testing.T) {
	ch := new(MockChannel)
	ch.On("Close").Return(nil).Once()

	require.NoError(t, rabbitmq.NewPublisher(ch, "x", ports.SystemClock).Close())
	ch.AssertExpectations(t)
}
