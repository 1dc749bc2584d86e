package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/create-and-design/storefront/internal/aws"
)

func main() {
	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	queueURL := os.Getenv("NOTIFICATIONS_QUEUE_URL")
	if queueURL == "" {
		log.Fatal("NOTIFICATIONS_QUEUE_URL is not configured")
	}

	sink := aws.NewPublisher(clients.SQS, queueURL)
	metrics := aws.NewMetrics(clients.CloudWatch, "Storefront/Notifier")
	p := NewProcessor(sink, metrics)

	// If RUN_LOCAL=true, simulate a single stream event for local testing.
	if os.Getenv("RUN_LOCAL") == "true" {
		var ev events.DynamoDBEvent
		if body := os.Getenv("LOCAL_STREAM_BODY"); body != "" {
			if err := json.Unmarshal([]byte(body), &ev); err != nil {
				log.Fatalf("invalid LOCAL_STREAM_BODY: %v", err)
			}
		}
		if err := p.Handle(context.Background(), ev); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}
