package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
)

const (
	OrderPlacedEvent        = "OrderPlaced"
	OrderStatusChangedEvent = "OrderStatusChanged"

	producerName = "cafeteria-web"
)

type OrderLine struct {
	MenuItemID   string      `json:"menuItemId"`
	MenuItemName string      `json:"menuItemName"`
	Quantity     int         `json:"quantity"`
	Price        money.Money `json:"price"`
	Notes        string      `json:"notes,omitempty"`
}

type OrderPlacedPayload struct {
	OrderID    string      `json:"orderId"`
	CustomerID string      `json:"customerId"`
	Items      []OrderLine `json:"items"`
	Total      money.Money `json:"total"`
	Status     string      `json:"status"`
}

type OrderStatusChangedPayload struct {
	OrderID   string       `json:"orderId"`
	From      order.Status `json:"from"`
	To        order.Status `json:"to"`
	ChangedBy string       `json:"changedBy"`
}

type (
	OrderPlacedEnvelope        = EventEnvelope[OrderPlacedPayload]
	OrderStatusChangedEnvelope = EventEnvelope[OrderStatusChangedPayload]
)

func newEnvelope[T any](name, key string, meta EnvelopeMetadata, now time.Time, payload T) EventEnvelope[T] {
	return EventEnvelope[T]{
		Header: Header{
			EventName:     name,
			EventVersion:  1,
			EventID:       uuid.NewString(),
			CorrelationID: meta.CorrelationID,
			Producer:      producerName,
			PartitionKey:  key,
			OccurredAt:    now.UTC(),
			Schema:        "contracts/events/order/" + name + ".v1.payload.schema.json",
		},
		Payload: payload,
	}
}

// NewOrderPlaced builds the event for an order the service just confirmed.
func NewOrderPlaced(o *order.Order, meta EnvelopeMetadata, now time.Time) OrderPlacedEnvelope {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderLine{
			MenuItemID:   it.MenuItemID,
			MenuItemName: it.MenuItemName,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Notes:        it.Notes,
		})
	}
	return newEnvelope(OrderPlacedEvent, o.ID, meta, now, OrderPlacedPayload{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Items:      lines,
		Total:      o.Total,
		Status:     string(o.Status),
	})
}

// NewOrderStatusChanged builds the event for a confirmed transition.
func NewOrderStatusChanged(orderID string, from, to order.Status, actor string, meta EnvelopeMetadata, now time.Time) OrderStatusChangedEnvelope {
	return newEnvelope(OrderStatusChangedEvent, orderID, meta, now, OrderStatusChangedPayload{
		OrderID:   orderID,
		From:      from,
		To:        to,
		ChangedBy: actor,
	})
}
