package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_NotifyDataUpdated(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	var sent DataUpdatedEvent
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicDataUpdated {
			return errors.New("unexpected topic " + msg.Topic)
		}
		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &sent)
	})
	p := NewPublisherWithProducer(producer, "", "node-a")

	err := p.NotifyDataUpdated(context.Background(), "transaction.recorded", 3, 9)

	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.Equal(t, EventTypeDataUpdated, sent.EventType)
	assert.Equal(t, "node-a", sent.Origin)
	assert.Equal(t, "transaction.recorded", sent.Change)
	assert.Equal(t, 3, sent.Items)
	assert.Equal(t, 9, sent.Transactions)
	assert.NotEmpty(t, sent.EventID)
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	p := NewPublisherWithProducer(producer, "custom", "node-a")

	err := p.NotifyDataUpdated(context.Background(), "item.created", 1, 0)

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func message(t *testing.T, event DataUpdatedEvent, withType bool) *sarama.ConsumerMessage {
	t.Helper()
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	msg := &sarama.ConsumerMessage{Topic: TopicDataUpdated, Value: raw}
	if withType {
		msg.Headers = []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeDataUpdated)}}
	}
	return msg
}

func TestConsumer_HandleMessage(t *testing.T) {
	c := newConsumer(nil, "group", []string{TopicDataUpdated}, "node-a")
	var got []DataUpdatedEvent
	c.RegisterHandler(EventTypeDataUpdated, func(ctx context.Context, e DataUpdatedEvent) error {
		got = append(got, e)
		return nil
	})
	ctx := context.Background()

	assert.True(t, c.handleMessage(ctx, message(t, DataUpdatedEvent{Origin: "node-b", Change: "x"}, true)))
	assert.False(t, c.handleMessage(ctx, message(t, DataUpdatedEvent{Origin: "node-a"}, true)), "own events are skipped")
	assert.False(t, c.handleMessage(ctx, message(t, DataUpdatedEvent{Origin: "node-b"}, false)), "missing event_type")
	assert.False(t, c.handleMessage(ctx, &sarama.ConsumerMessage{
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeDataUpdated)}},
		Value:   []byte("{"),
	}))

	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Change)
}

func TestConsumer_HandlerError(t *testing.T) {
	c := newConsumer(nil, "group", nil, "node-a")
	c.RegisterHandler(EventTypeDataUpdated, func(context.Context, DataUpdatedEvent) error {
		return errors.New("reload failed")
	})

	assert.False(t, c.handleMessage(context.Background(), message(t, DataUpdatedEvent{Origin: "node-b"}, true)))
}
