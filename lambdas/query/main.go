package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"contactform/internal/config"
	"contactform/internal/handler"
	"contactform/internal/observability"
	"contactform/internal/store"
)

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
	h := handler.NewQuery(st, logger)

	lambda.Start(h.HandleQuery)
}
