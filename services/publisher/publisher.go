package publisher

// Publisher represents a service for publishing extracted records to
// downstream consumers
type Publisher interface {
	// Publish publishes a serialized record keyed by its source site
	Publish(site string, record []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
