package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"contactform/internal/config"
	"contactform/internal/handler"
	"contactform/internal/mailer"
	"contactform/internal/observability"
	"contactform/internal/store"
)

// Clients are built once at cold start and reused across invocations.
func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("unable to build logger, %v", err)
	}
	defer logger.Sync()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	st := store.New(dynamodb.NewFromConfig(awsCfg), cfg.Store.TableName)
	m := mailer.New(sesv2.NewFromConfig(awsCfg), cfg.Email, logger)
	h := handler.New(st, m, logger, cfg.App.IsDevelopment())

	lambda.Start(h.HandleSubmit)
}
