package events

import (
	"errors"
	"fmt"
	"time"
)

var ErrMalformedEnvelope = errors.New("malformed event envelope")

// Header identifies one emitted event. It is flattened into the envelope on
// the wire so consumers see a single JSON object.
type Header struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
}

type EventEnvelope[T any] struct {
	Header
	Payload T `json:"payload"`
}

// EnvelopeMetadata is the request context copied onto every event.
type EnvelopeMetadata struct {
	CorrelationID string
}

// Validate checks that h names the expected event and is routable.
func (h Header) Validate(name string, version int) error {
	switch {
	case h.EventName != name:
		return fmt.Errorf("%w: eventName %q, want %q", ErrMalformedEnvelope, h.EventName, name)
	case h.EventVersion != version:
		return fmt.Errorf("%w: eventVersion %d, want %d", ErrMalformedEnvelope, h.EventVersion, version)
	case h.EventID == "":
		return fmt.Errorf("%w: missing eventId", ErrMalformedEnvelope)
	case h.PartitionKey == "":
		return fmt.Errorf("%w: missing partitionKey", ErrMalformedEnvelope)
	}
	return nil
}
