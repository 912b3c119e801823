package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"contactform/internal/domain"
)

// EmailIndex is the GSI keyed by email, kept for querying submissions by
// submitter address.
const EmailIndex = "email-index"

// ErrNotFound is returned when no submission exists for the given id.
var ErrNotFound = errors.New("submission not found")

// DynamoAPI is the slice of the DynamoDB client the store needs.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// SubmissionStore persists submissions to DynamoDB.
type SubmissionStore struct {
	client DynamoAPI
	table  string
}

// New creates a SubmissionStore writing to the given table.
func New(client DynamoAPI, table string) *SubmissionStore {
	return &SubmissionStore{client: client, table: table}
}

// Put writes the record as a single unconditional insert. Ids are freshly
// generated, so overwrite-by-id semantics are acceptable.
func (s *SubmissionStore) Put(ctx context.Context, sub *domain.Submission) error {
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("marshal submission %s: %w", sub.ID, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put submission %s: %w", sub.ID, err)
	}
	return nil
}

// GetByID retrieves a single submission by its reference number.
func (s *SubmissionStore) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get submission %s: %w", id, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var sub domain.Submission
	if err := attributevalue.UnmarshalMap(result.Item, &sub); err != nil {
		return nil, fmt.Errorf("unmarshal submission %s: %w", id, err)
	}
	return &sub, nil
}

// QueryByEmail returns all submissions for a submitter address via the
// email-index GSI. The address is expected to already be lower-cased, since
// that is how records are stored.
func (s *SubmissionStore) QueryByEmail(ctx context.Context, email string) ([]domain.Submission, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(EmailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query submissions for %s: %w", email, err)
	}

	subs := make([]domain.Submission, 0, len(result.Items))
	for _, item := range result.Items {
		var sub domain.Submission
		if err := attributevalue.UnmarshalMap(item, &sub); err != nil {
			return nil, fmt.Errorf("unmarshal submission item: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
