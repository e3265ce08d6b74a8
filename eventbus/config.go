package eventbus

import (
	"os"
)

// GetBrokers returns Kafka bootstrap servers from env KAFKA_BOOTSTRAP_SERVERS.
// An empty result means event publishing is unavailable.
func GetBrokers() string {
	return os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
}
