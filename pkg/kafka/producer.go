package kafka

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/sharada0417/RanRevHoldings-sub000/pkg/tlsutil"
)

// Message represents a Kafka message.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Writer is the part of kafka-go's Writer the producer drives.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// WriterFactory builds the writer for one topic.
type WriterFactory func(topic string) Writer

// Producer wraps kafka-go writers for publishing messages, one per topic.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]Writer
	brokers   []string
	newWriter WriterFactory
}

// NewProducer creates a new Producer with the given configuration. It fails
// only when the SASL or TLS settings cannot be turned into a transport.
func NewProducer(cfg Config) (*Producer, error) {
	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	p := &Producer{
		writers: make(map[string]Writer),
		brokers: cfg.Brokers,
	}
	p.newWriter = func(topic string) Writer {
		w := &kafkago.Writer{
			Addr:         kafkago.TCP(p.brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireAll,
		}
		if transport != nil {
			w.Transport = transport
		}
		return w
	}
	return p, nil
}

// NewProducerWithWriters creates a Producer whose writers come from factory.
func NewProducerWithWriters(brokers []string, factory WriterFactory) *Producer {
	return &Producer{
		writers:   make(map[string]Writer),
		brokers:   brokers,
		newWriter: factory,
	}
}

// Publish sends messages to the specified topic. Messages sharing a key land
// on the same partition, so per-aggregate order is kept.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.getOrCreateWriter(topic)

	kafkaMessages := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		kafkaMessages = append(kafkaMessages, kafkago.Message{
			Key:     msg.Key,
			Value:   msg.Value,
			Headers: toHeaders(msg.Headers),
		})
	}

	if err := w.WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]Writer)
	return firstErr
}

// getOrCreateWriter lazily creates a writer for a topic.
func (p *Producer) getOrCreateWriter(topic string) Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}

// toHeaders renders headers in key order so identical messages encode the same.
func toHeaders(in map[string]string) []kafkago.Header {
	if len(in) == 0 {
		return nil
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]kafkago.Header, 0, len(keys))
	for _, k := range keys {
		out = append(out, kafkago.Header{Key: k, Value: []byte(in[k])})
	}
	return out
}

func newTransport(cfg Config) (*kafkago.Transport, error) {
	if !cfg.SASLEnabled && !cfg.TLS {
		return nil, nil
	}
	t := &kafkago.Transport{}
	if cfg.SASLEnabled {
		mech, err := saslMechanism(cfg)
		if err != nil {
			return nil, err
		}
		t.SASL = mech
	}
	if cfg.TLS {
		tlsCfg, err := tlsutil.ClientConfig(cfg.TLSCAFile)
		if err != nil {
			return nil, fmt.Errorf("kafka tls: %w", err)
		}
		t.TLS = tlsCfg
	}
	return t, nil
}

func saslMechanism(cfg Config) (sasl.Mechanism, error) {
	switch cfg.SASLMechanism {
	case "", "PLAIN":
		return plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
}
