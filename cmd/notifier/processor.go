package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/create-and-design/storefront/internal/aws"
)

const (
	// batchSize caps how many notifications one publish batch carries,
	// regardless of how many stream records the invocation delivered.
	batchSize = 5
	// maxRetries bounds re-publishing of a failed batch. After the budget
	// is spent the batch is dropped, never looped.
	maxRetries = 2
	// publishTimeout bounds each sink call so a stuck sink surfaces as an
	// error instead of blocking the invocation.
	publishTimeout = 15 * time.Second
)

// Sink accepts one notification message.
type Sink interface {
	Publish(ctx context.Context, body string, attributes map[string]string) error
}

// Processor consumes order change-stream events and fans each inserted
// order out to the notification sink.
type Processor struct {
	sink    Sink
	metrics *aws.Metrics
}

// NewProcessor creates a notifier processor with its sink injected.
func NewProcessor(sink Sink, metrics *aws.Metrics) *Processor {
	return &Processor{
		sink:    sink,
		metrics: metrics,
	}
}

// Handle processes one change-stream invocation. Every batch is driven to
// completion, published or retry budget exhausted, before the event is
// acknowledged; the feed redelivers at-least-once, so duplicates upstream
// are expected and harmless.
func (p *Processor) Handle(ctx context.Context, ev events.DynamoDBEvent) error {
	summaries := make([]OrderSummary, 0, len(ev.Records))
	for _, rec := range ev.Records {
		if rec.EventName != "INSERT" {
			continue
		}
		s, err := summaryFromImage(rec.Change.NewImage)
		if err != nil {
			log.Printf("[notifier] skipping malformed record %s: %v", rec.EventID, err)
			continue
		}
		summaries = append(summaries, s)
	}

	published, dropped := 0, 0
	for start := 0; start < len(summaries); start += batchSize {
		end := min(start+batchSize, len(summaries))
		ok, failed := p.publishBatch(ctx, summaries[start:end])
		published += ok
		dropped += failed
	}

	if p.metrics != nil {
		p.metrics.Count(ctx, "OrdersNotified", float64(published))
		p.metrics.Count(ctx, "NotificationsDropped", float64(dropped))
	}

	log.Printf("[notifier] records=%d published=%d dropped=%d", len(ev.Records), published, dropped)
	return nil
}

// publishBatch attempts every summary in the batch once, then retries the
// failures as a group up to maxRetries before dropping them.
func (p *Processor) publishBatch(ctx context.Context, batch []OrderSummary) (published, dropped int) {
	pending := batch
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var failed []OrderSummary
		for _, s := range pending {
			if err := p.publish(ctx, s); err != nil {
				log.Printf("[notifier] publish order=%s attempt=%d: %v", s.OrderID, attempt+1, err)
				failed = append(failed, s)
				continue
			}
			published++
		}
		if len(failed) == 0 {
			return published, 0
		}
		pending = failed
	}

	for _, s := range pending {
		log.Printf("[notifier] dropping order=%s after %d attempts", s.OrderID, maxRetries+1)
	}
	return published, len(pending)
}

func (p *Processor) publish(ctx context.Context, s OrderSummary) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	attrs := map[string]string{
		"event":    "order_created",
		"order_id": s.OrderID,
	}
	return p.sink.Publish(ctx, string(body), attrs)
}

// summaryFromImage derives a notification summary from the stream record's
// new image of the inserted order.
func summaryFromImage(image map[string]events.DynamoDBAttributeValue) (OrderSummary, error) {
	s := OrderSummary{
		OrderID:       stringAttr(image, "id"),
		DeliveryDate:  stringAttr(image, "deliveryDate"),
		PaymentMethod: stringAttr(image, "paymentMethod"),
		CreatedAt:     stringAttr(image, "createdAt"),
	}
	if s.OrderID == "" {
		return s, errors.New("stream image has no order id")
	}

	if av, ok := image["customer"]; ok && av.DataType() == events.DataTypeMap {
		m := av.Map()
		s.CustomerName = stringAttr(m, "name")
		s.CustomerPhone = stringAttr(m, "phone")
	}
	if av, ok := image["total"]; ok && av.DataType() == events.DataTypeNumber {
		if f, err := strconv.ParseFloat(av.Number(), 64); err == nil {
			s.Total = f
		}
	}
	return s, nil
}

func stringAttr(image map[string]events.DynamoDBAttributeValue, name string) string {
	if av, ok := image[name]; ok && av.DataType() == events.DataTypeString {
		return av.String()
	}
	return ""
}
