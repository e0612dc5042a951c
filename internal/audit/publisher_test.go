package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitaran/internal/platform/kafka/producer"
)

func TestPublisherEmit(t *testing.T) {
	t.Run("stamps timestamp when zero", func(t *testing.T) {
		store := NewInMemoryStore()
		pub := NewPublisher(store)

		err := pub.Emit(context.Background(), Event{
			Action:    ActionClaimApproved,
			CitizenID: "123456789012",
		})
		require.NoError(t, err)

		events := store.Events()
		require.Len(t, events, 1)
		assert.False(t, events[0].Timestamp.IsZero())
	})

	t.Run("preserves explicit timestamp", func(t *testing.T) {
		store := NewInMemoryStore()
		pub := NewPublisher(store)

		at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		err := pub.Emit(context.Background(), Event{
			Action:    ActionStatusChanged,
			Timestamp: at,
		})
		require.NoError(t, err)

		events := store.Events()
		require.Len(t, events, 1)
		assert.Equal(t, at, events[0].Timestamp)
	})
}

func TestInMemoryStoreByAction(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{Action: ActionClaimApproved, CitizenID: "111111111111"}))
	require.NoError(t, store.Append(ctx, Event{Action: ActionClaimDenied, CitizenID: "222222222222"}))
	require.NoError(t, store.Append(ctx, Event{Action: ActionClaimApproved, CitizenID: "333333333333"}))

	approved := store.ByAction(ActionClaimApproved)
	require.Len(t, approved, 2)
	assert.Equal(t, "111111111111", approved[0].CitizenID)
	assert.Equal(t, "333333333333", approved[1].CitizenID)

	assert.Len(t, store.ByAction(ActionClaimDenied), 1)
	assert.Empty(t, store.ByAction(ActionBudgetReset))
}

// capturingProducer records messages instead of sending them.
type capturingProducer struct {
	messages []*producer.Message
}

func (p *capturingProducer) ProduceAsync(msg *producer.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

func TestKafkaStoreAppend(t *testing.T) {
	prod := &capturingProducer{}
	store := NewKafkaStore(prod, "vitaran.audit")

	event := Event{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CitizenID: "123456789012",
		Action:    ActionClaimApproved,
		Scheme:    "PM-KISAN",
		Amount:    50_000,
		Decision:  "approved",
	}
	require.NoError(t, store.Append(context.Background(), event))

	require.Len(t, prod.messages, 1)
	msg := prod.messages[0]
	assert.Equal(t, "vitaran.audit", msg.Topic)
	assert.Equal(t, []byte("123456789012"), msg.Key)
	assert.Equal(t, string(ActionClaimApproved), msg.Headers["action"])

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestKafkaStoreAppendWithoutCitizen(t *testing.T) {
	prod := &capturingProducer{}
	store := NewKafkaStore(prod, "vitaran.audit")

	require.NoError(t, store.Append(context.Background(), Event{Action: ActionBudgetReset}))

	require.Len(t, prod.messages, 1)
	assert.Nil(t, prod.messages[0].Key)
}
