//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"vitaran/internal/audit"
	"vitaran/internal/platform/kafka/producer"
	"vitaran/pkg/testutil/containers"
)

func TestKafkaStoreDelivery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	kc := containers.GetManager().GetKafka(t)

	const topic = "vitaran.audit.test"
	require.NoError(t, kc.CreateTopic(ctx, topic, 1))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := producer.New(producer.DefaultConfig(kc.Brokers), logger)
	require.NoError(t, err)
	defer p.Close()

	store := audit.NewKafkaStore(p, topic)
	publisher := audit.NewPublisher(store)

	event := audit.Event{
		CitizenID: "123456789012",
		Action:    audit.ActionClaimApproved,
		Scheme:    "PM-KISAN",
		Amount:    50_000,
		Decision:  "approved",
	}
	require.NoError(t, publisher.Emit(ctx, event))
	require.NoError(t, p.Flush(10*time.Second))

	consumer, err := kc.NewConsumer("audit-test-group", topic)
	require.NoError(t, err)
	defer consumer.Close()

	record := kc.WaitForMessage(ctx, consumer, 15*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "123456789012"
	})
	require.NotNil(t, record, "expected the audit event on the topic")

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	require.Equal(t, audit.ActionClaimApproved, decoded.Action)
	require.Equal(t, int64(50_000), decoded.Amount)
	require.False(t, decoded.Timestamp.IsZero())
	require.Equal(t, string(audit.ActionClaimApproved), headerValue(record, "action"))
}

func headerValue(r *kgo.Record, key string) string {
	for _, h := range r.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
