package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SubscriptionRepo persists push subscriptions keyed by (userId, endpoint).
type SubscriptionRepo struct {
	Dynamo *Dynamo
}

// Add registers a device subscription. Duplicate endpoints for the same user
// are a no-op; returns whether a new row was written.
func (r *SubscriptionRepo) Add(ctx context.Context, sub models.PushSubscription) (bool, error) {
	marshaled, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return false, fmt.Errorf("failed to marshal subscription: %w", err)
	}

	_, err = r.Dynamo.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.Dynamo.table(models.PushSubscriptionsTable)),
		Item:                marshaled,
		ConditionExpression: aws.String("attribute_not_exists(endpoint)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, fmt.Errorf("failed to store subscription: %w", err)
	}
	return true, nil
}

// ListForUser returns all registered device subscriptions for the user.
func (r *SubscriptionRepo) ListForUser(ctx context.Context, userID string) ([]models.PushSubscription, error) {
	items, err := r.Dynamo.QueryItems(ctx, models.PushSubscriptionsTable,
		"userId = :user",
		map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}

	var subs []models.PushSubscription
	if err := attributevalue.UnmarshalListOfMaps(items, &subs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscriptions: %w", err)
	}
	return subs, nil
}

// Remove drops one device subscription, used when an endpoint has expired.
func (r *SubscriptionRepo) Remove(ctx context.Context, userID, endpoint string) error {
	return r.Dynamo.DeleteItem(ctx, models.PushSubscriptionsTable, map[string]types.AttributeValue{
		"userId":   &types.AttributeValueMemberS{Value: userID},
		"endpoint": &types.AttributeValueMemberS{Value: endpoint},
	})
}
