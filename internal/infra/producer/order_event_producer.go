package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model/event"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// IOrderEventProducer 訂單事件發布介面
// 訂單成立後發布事件給下游(出貨、通知...)，發布失敗不影響訂單本身
type IOrderEventProducer interface {
	ProduceOrderCreatedEvent(ctx context.Context, evt *event.OrderCreatedEvent) error
	Close() error
}

type OrderEventProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

// NewOrderEventProducer 創建訂單事件producer
// 同步發送，會block到訊息寫入
func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // 同一用戶的事件落在同一分區，保序
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}

	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) ProduceOrderCreatedEvent(ctx context.Context, evt *event.OrderCreatedEvent) error {
	if p.closed.Load() {
		return fmt.Errorf("producer is closed")
	}

	if evt.EventID == "" {
		evt.EventID = uuid.New().String()
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now()
	}
	evt.EventType = event.OrderCreatedEventName
	evt.AggregateID = strconv.FormatUint(uint64(evt.OrderID), 10)

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal order created event: %w", err)
	}

	// key用userID，確保同一用戶事件順序
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(evt.UserID), 10)),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("produce order created event: %w", err)
	}
	return nil
}

func (p *OrderEventProducer) Close() error {
	if p.closed.CompareAndSwap(false, true) {
		return p.writer.Close()
	}
	return nil
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
