// Package ddb implements the record store using AWS DynamoDB.
// This is the only layer that should have knowledge of DynamoDB specifics.
package ddb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cv-backend/internal/domain"
	appErrors "cv-backend/internal/errors"
	"cv-backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// ddbStore is the concrete implementation for DynamoDB.
type ddbStore struct {
	client    DynamoDBAPI
	tableName string
	logger    *zap.Logger
}

// NewStore creates a DynamoDB backed CV store for tableName.
func NewStore(client DynamoDBAPI, tableName string, logger *zap.Logger) repository.CVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ddbStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func (s *ddbStore) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		domain.AttrID: &types.AttributeValueMemberS{Value: id},
	}
}

// GetCV reads one record by key.
func (s *ddbStore) GetCV(ctx context.Context, id string) (domain.CV, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, appErrors.FromAPIError("GetItem", err)
	}
	if len(out.Item) == 0 {
		return nil, repository.ErrCVNotFound
	}
	return decodeItem(out.Item)
}

// SetViews writes the counter with SET #views = :new_views.
func (s *ddbStore) SetViews(ctx context.Context, id string, views int) error {
	update := expression.Set(expression.Name(domain.AttrViews), expression.Value(views))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(id),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return appErrors.FromAPIError("UpdateItem", err)
	}

	s.logger.Debug("Updated view counter", zap.String("id", id), zap.Int("views", views))
	return nil
}

// IncrementViews adds one to the counter server side. The condition on the
// key keeps the update from creating records that do not exist.
func (s *ddbStore) IncrementViews(ctx context.Context, id string) (domain.CV, error) {
	update := expression.Add(expression.Name(domain.AttrViews), expression.Value(1))
	cond := expression.AttributeExists(expression.Name(domain.AttrID))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, repository.ErrCVNotFound
		}
		return nil, appErrors.FromAPIError("UpdateItem", err)
	}
	return decodeItem(out.Attributes)
}

// decodeItem converts a DynamoDB item into a CV, keeping numbers exact.
func decodeItem(item map[string]types.AttributeValue) (domain.CV, error) {
	var raw map[string]any
	err := attributevalue.UnmarshalMapWithOptions(item, &raw, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal cv item: %w", err)
	}
	return domain.CV(normalize(raw).(map[string]any)), nil
}

// normalize swaps attributevalue.Number for json.Number so integer
// attributes are emitted as JSON integers rather than strings or floats.
func normalize(v any) any {
	switch t := v.(type) {
	case attributevalue.Number:
		return json.Number(t)
	case []attributevalue.Number:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = json.Number(n)
		}
		return out
	case map[string]any:
		for k, inner := range t {
			t[k] = normalize(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = normalize(inner)
		}
		return t
	default:
		return v
	}
}
