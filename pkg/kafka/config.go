package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string
	SASLEnabled   bool

	// TLS enables TLS for Kafka connections. TLSCAFile optionally pins the
	// root CA; the system pool is used otherwise.
	TLS       bool
	TLSCAFile string
}
