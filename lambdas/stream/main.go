package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/eventbridge"
	"github.com/aws/aws-sdk-go/service/eventbridge/eventbridgeiface"

	"contactform/internal/config"
)

const (
	eventSource     = "travel.submissions"
	eventDetailType = "SubmissionCreated"
)

// EventBridgeClient publishes submission events to the configured bus.
type EventBridgeClient struct {
	client eventbridgeiface.EventBridgeAPI
	bus    string
}

// SubmissionEvent is the event detail published for each new submission.
type SubmissionEvent struct {
	SubmissionID string `json:"submissionId"`
	Email        string `json:"email"`
	SubmittedAt  string `json:"submittedAt"`
}

func (e *EventBridgeClient) PutEvent(detail SubmissionEvent) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal event detail: %w", err)
	}

	event := &eventbridge.PutEventsRequestEntry{
		Source:       aws.String(eventSource),
		DetailType:   aws.String(eventDetailType),
		Detail:       aws.String(string(data)),
		EventBusName: aws.String(e.bus),
	}

	_, err = e.client.PutEvents(&eventbridge.PutEventsInput{
		Entries: []*eventbridge.PutEventsRequestEntry{event},
	})
	if err != nil {
		log.Printf("Error sending event to EventBridge: %v", err)
		return err
	}
	return nil
}

// processRecords publishes one event per INSERT record. Submissions are never
// updated by this system, so other stream events carry nothing to report.
func processRecords(ebClient *EventBridgeClient, dynamodbEvent events.DynamoDBEvent) error {
	for _, record := range dynamodbEvent.Records {
		if record.EventName != "INSERT" {
			continue
		}

		image := record.Change.NewImage
		detail := SubmissionEvent{
			SubmissionID: image["id"].String(),
			Email:        image["email"].String(),
			SubmittedAt:  image["submittedAt"].String(),
		}

		if err := ebClient.PutEvent(detail); err != nil {
			log.Printf("Failed to put event for submission %s: %v", detail.SubmissionID, err)
			return err
		}
		log.Printf("Published submission event: %s", detail.SubmissionID)
	}
	return nil
}

func handler(ctx context.Context, dynamodbEvent events.DynamoDBEvent) error {
	cfg := config.Load()
	sess := session.Must(session.NewSession())
	ebClient := &EventBridgeClient{
		client: eventbridge.New(sess),
		bus:    cfg.Events.BusName,
	}
	return processRecords(ebClient, dynamodbEvent)
}

func main() {
	lambda.Start(handler)
}
