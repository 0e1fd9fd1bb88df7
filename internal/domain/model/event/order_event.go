package event

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderCreatedEventName EventType = "OrderCreated"
)

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

type Event interface {
	Type() EventType
	GetID() string
}

type OrderItemData struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

type OrderCreatedEvent struct {
	BaseEvent
	OrderID   uint            `json:"order_id"`
	UserID    uint            `json:"user_id"`
	OrderDate time.Time       `json:"order_date"`
	Items     []OrderItemData `json:"items"`
	Amount    decimal.Decimal `json:"amount"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}
