package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"contactform/internal/config"
	"contactform/internal/observability"
)

var logger *zap.Logger

func init() {
	cfg := config.Load()

	var err error
	logger, err = observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("unable to build logger, %v", err)
	}
}

// handler records every submission event for the audit trail.
func handler(ctx context.Context, event events.CloudWatchEvent) error {
	logger.Info("submission event received",
		zap.String("source", event.Source),
		zap.String("detailType", event.DetailType),
		zap.ByteString("detail", event.Detail))
	return nil
}

func main() {
	lambda.Start(handler)
}
