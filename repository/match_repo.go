package repository

import (
	"context"
	"fmt"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchRepo persists matches keyed by the sorted pair of pet ids. The pairKey
// uniqueness constraint is what makes concurrent mutual-like detection safe:
// the second creation attempt fails the conditional insert and reads the
// winner's item instead.
type MatchRepo struct {
	Dynamo *Dynamo
}

func matchKey(pairKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}
}

// InsertIfAbsent atomically creates the match unless one already exists for
// the pair. Returns the stored match and whether this call created it; when
// the race is lost, the existing match is fetched and returned.
func (r *MatchRepo) InsertIfAbsent(ctx context.Context, match models.Match) (*models.Match, bool, error) {
	created, err := r.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, "pairKey", match)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert match: %w", err)
	}
	if created {
		return &match, true, nil
	}

	existing, err := r.GetByPair(ctx, match.PetA, match.PetB)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Lost the insert race and the winner's row vanished in between:
		// only possible through a concurrent unmatch. Report conflict.
		return nil, false, &models.ConflictError{Resource: "match", Key: match.PairKey}
	}
	return existing, false, nil
}

// GetByPair returns the match for the unordered pet pair, or nil.
func (r *MatchRepo) GetByPair(ctx context.Context, petA, petB string) (*models.Match, error) {
	item, err := r.Dynamo.GetItem(ctx, models.MatchesTable, matchKey(models.PairKey(petA, petB)))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

// GetByID looks a match up through the matchId GSI, or nil.
func (r *MatchRepo) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchIDIndex,
		"matchId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: matchID},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query match by id: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

// SetChatID links the chat created for the match back onto the match row.
func (r *MatchRepo) SetChatID(ctx context.Context, pairKey, chatID string) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.MatchesTable,
		"SET chatId = :chatId",
		matchKey(pairKey),
		map[string]types.AttributeValue{
			":chatId": &types.AttributeValueMemberS{Value: chatID},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to link chat to match: %w", err)
	}
	return nil
}

// Delete removes the match row. Unmatch and cascading deletion only.
func (r *MatchRepo) Delete(ctx context.Context, pairKey string) error {
	return r.Dynamo.DeleteItem(ctx, models.MatchesTable, matchKey(pairKey))
}

// ListForPet returns every match involving the pet.
func (r *MatchRepo) ListForPet(ctx context.Context, petID string) ([]models.Match, error) {
	var matches []models.Match
	err := r.Dynamo.ScanItems(ctx, models.MatchesTable,
		"petA = :pet OR petB = :pet",
		map[string]types.AttributeValue{
			":pet": &types.AttributeValueMemberS{Value: petID},
		}, nil, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for pet: %w", err)
	}
	return matches, nil
}
