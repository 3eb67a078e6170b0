package kafka

import "time"

// DataUpdatedEvent announces that an instance committed a new snapshot.
// Peers sharing the same store reload on receipt.
type DataUpdatedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	Origin       string    `json:"origin"`
	Change       string    `json:"change"`
	Items        int       `json:"items"`
	Transactions int       `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeDataUpdated = "inventory.data_updated"
)

// Kafka topics
const (
	TopicDataUpdated = "inventory-data-updated"
)
