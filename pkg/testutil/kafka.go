package testutil

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.6.1"

// KafkaContainer is a single-broker Kafka for event publishing tests.
type KafkaContainer struct {
	Container *kafka.KafkaContainer
	Brokers   []string
}

// NewKafkaContainer starts Kafka and registers its teardown with t.
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()

	c, err := kafka.Run(ctx, kafkaImage, kafka.WithClusterID("holdings-test"))
	require.NoError(t, err, "start kafka container")

	kc := &KafkaContainer{Container: c}
	t.Cleanup(func() { kc.Cleanup(t) })

	kc.Brokers, err = c.Brokers(ctx)
	require.NoError(t, err, "kafka brokers")
	return kc
}

// Cleanup terminates the container. It is idempotent.
func (kc *KafkaContainer) Cleanup(t *testing.T) {
	t.Helper()
	if kc.Container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kc.Container.Terminate(ctx); err != nil {
		t.Logf("terminate kafka container: %v", err)
	}
	kc.Container = nil
}

// ReadMessages consumes up to n messages from topic, starting at the earliest
// offset, until ctx expires.
func (kc *KafkaContainer) ReadMessages(ctx context.Context, t *testing.T, topic string, n int) []kafkago.Message {
	t.Helper()

	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     kc.Brokers,
		Topic:       topic,
		Partition:   0,
		StartOffset: kafkago.FirstOffset,
		MaxWait:     500 * time.Millisecond,
	})
	defer r.Close()

	var out []kafkago.Message
	for len(out) < n {
		msg, err := r.ReadMessage(ctx)
		require.NoError(t, err, "read %s after %d messages", topic, len(out))
		out = append(out, msg)
	}
	return out
}

// CreateTopic creates a single-partition topic.
func (kc *KafkaContainer) CreateTopic(t *testing.T, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", kc.Brokers[0])
	require.NoError(t, err, "dial kafka")
	defer conn.Close()

	err = conn.CreateTopics(kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	require.NoError(t, err, "create topic %s", topic)
}
