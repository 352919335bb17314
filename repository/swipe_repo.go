package repository

import (
	"context"
	"fmt"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SwipeRepo persists directional swipes keyed by (swiperPetId, swipedPetId).
type SwipeRepo struct {
	Dynamo *Dynamo
}

func swipeKey(swiperPetID, swipedPetID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"swiperPetId": &types.AttributeValueMemberS{Value: swiperPetID},
		"swipedPetId": &types.AttributeValueMemberS{Value: swipedPetID},
	}
}

// Upsert records a swipe, overwriting the kind of any previous swipe on the
// same ordered pair. Returns the previous swipe, or nil if this is the first.
func (r *SwipeRepo) Upsert(ctx context.Context, swipe models.Swipe) (*models.Swipe, error) {
	updateExpression := "SET #t = :type, createdAt = if_not_exists(createdAt, :createdAt)"
	old, err := r.Dynamo.UpdateItemReturningOld(ctx, models.SwipesTable, updateExpression,
		swipeKey(swipe.SwiperPetID, swipe.SwipedPetID),
		map[string]types.AttributeValue{
			":type":      &types.AttributeValueMemberS{Value: swipe.Kind},
			":createdAt": &types.AttributeValueMemberS{Value: swipe.CreatedAt},
		},
		map[string]string{"#t": "type"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert swipe: %w", err)
	}
	if len(old) == 0 {
		return nil, nil
	}

	var previous models.Swipe
	if err := attributevalue.UnmarshalMap(old, &previous); err != nil {
		return nil, fmt.Errorf("failed to unmarshal previous swipe: %w", err)
	}
	return &previous, nil
}

// Get returns the swipe from swiperPetID toward swipedPetID, or nil.
func (r *SwipeRepo) Get(ctx context.Context, swiperPetID, swipedPetID string) (*models.Swipe, error) {
	item, err := r.Dynamo.GetItem(ctx, models.SwipesTable, swipeKey(swiperPetID, swipedPetID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var swipe models.Swipe
	if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swipe: %w", err)
	}
	return &swipe, nil
}

// ListBySwiper returns every swipe the pet has made.
func (r *SwipeRepo) ListBySwiper(ctx context.Context, petID string) ([]models.Swipe, error) {
	items, err := r.Dynamo.QueryItems(ctx, models.SwipesTable,
		"swiperPetId = :pet",
		map[string]types.AttributeValue{
			":pet": &types.AttributeValueMemberS{Value: petID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes by swiper: %w", err)
	}

	var swipes []models.Swipe
	if err := attributevalue.UnmarshalListOfMaps(items, &swipes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swipes: %w", err)
	}
	return swipes, nil
}

// ListBySwiped returns every swipe targeting the pet, via the GSI.
func (r *SwipeRepo) ListBySwiped(ctx context.Context, petID string) ([]models.Swipe, error) {
	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.SwipesTable, models.SwipedPetIndex,
		"swipedPetId = :pet",
		map[string]types.AttributeValue{
			":pet": &types.AttributeValueMemberS{Value: petID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes by swiped: %w", err)
	}

	var swipes []models.Swipe
	if err := attributevalue.UnmarshalListOfMaps(items, &swipes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swipes: %w", err)
	}
	return swipes, nil
}

// DeleteAllForPet removes every swipe where the pet is swiper or target.
// Used by cascading pet deletion.
func (r *SwipeRepo) DeleteAllForPet(ctx context.Context, petID string) error {
	outgoing, err := r.ListBySwiper(ctx, petID)
	if err != nil {
		return err
	}
	incoming, err := r.ListBySwiped(ctx, petID)
	if err != nil {
		return err
	}

	var requests []types.WriteRequest
	for _, s := range append(outgoing, incoming...) {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: swipeKey(s.SwiperPetID, s.SwipedPetID)},
		})
	}
	if len(requests) == 0 {
		return nil
	}
	return r.Dynamo.BatchWriteItems(ctx, models.SwipesTable, requests)
}
