// Package events publishes order lifecycle events to Kafka.
//
// Records are Avro encoded and keyed by store id, so every event of one store
// lands on the same partition and keeps its order.
package events

import (
	"time"

	"github.com/hamba/avro/v2"
)

type OrderEventType string

const (
	OrderCreated       OrderEventType = "order.created"
	OrderStatusChanged OrderEventType = "order.status_changed"
)

const OrderEventSchemaText = `{
	"type": "record",
	"namespace": "stockstores.orders",
	"name": "order_event",
	"fields": [
		{"name": "type", "type": "string"},
		{"name": "order_id", "type": "string"},
		{"name": "user_id", "type": "string"},
		{"name": "store_id", "type": "string"},
		{"name": "store_name", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "previous_status", "type": "string"},
		{"name": "total_price", "type": "double"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

var orderEventSchema = avro.MustParse(OrderEventSchemaText)

type OrderEvent struct {
	Type           OrderEventType `avro:"type"`
	OrderID        string         `avro:"order_id"`
	UserID         string         `avro:"user_id"`
	StoreID        string         `avro:"store_id"`
	StoreName      string         `avro:"store_name"`
	Status         string         `avro:"status"`
	PreviousStatus string         `avro:"previous_status"`
	TotalPrice     float64        `avro:"total_price"`
	OccurredAt     time.Time      `avro:"occurred_at"`
}

// Encode returns the Avro binary form of e.
func Encode(e OrderEvent) ([]byte, error) {
	return avro.Marshal(orderEventSchema, e)
}

func Decode(data []byte) (OrderEvent, error) {
	var e OrderEvent
	err := avro.Unmarshal(orderEventSchema, data, &e)
	return e, err
}
