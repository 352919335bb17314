package repository

import (
	"context"
	"fmt"

	"github.com/11Rojas/mascoticas-backend/models"
	"github.com/11Rojas/mascoticas-backend/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// External collaborator tables. Profile and pet CRUD live outside this
// service; the matching core only reads the handful of fields below.
const (
	UserProfilesTable = "UserProfiles"
	PetsTable         = "Pets"
)

// ProfileDirectory reads pet ownership, display names and block lists from
// the profile tables owned by the CRUD service.
type ProfileDirectory struct {
	Dynamo *Dynamo
}

func (d *ProfileDirectory) getPet(ctx context.Context, petID string) (map[string]types.AttributeValue, error) {
	item, err := d.Dynamo.GetItem(ctx, PetsTable, map[string]types.AttributeValue{
		"petId": &types.AttributeValueMemberS{Value: petID},
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &models.NotFoundError{Resource: "pet", ID: petID}
	}
	return item, nil
}

// OwnerOf returns the user id owning the pet.
func (d *ProfileDirectory) OwnerOf(ctx context.Context, petID string) (string, error) {
	pet, err := d.getPet(ctx, petID)
	if err != nil {
		return "", err
	}
	owner := utils.ExtractString(pet, "ownerId")
	if owner == "" {
		return "", fmt.Errorf("pet %s has no owner", petID)
	}
	return owner, nil
}

// PetName returns the pet's display name.
func (d *ProfileDirectory) PetName(ctx context.Context, petID string) (string, error) {
	pet, err := d.getPet(ctx, petID)
	if err != nil {
		return "", err
	}
	return utils.ExtractString(pet, "name"), nil
}

// BlockedUsers returns the ids the user has blocked.
func (d *ProfileDirectory) BlockedUsers(ctx context.Context, userID string) ([]string, error) {
	item, err := d.Dynamo.GetItem(ctx, UserProfilesTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if err != nil || item == nil {
		return nil, err
	}
	return utils.ExtractStringSlice(item, "blockedUsers"), nil
}

// PetsOf returns the ids of the user's pets.
func (d *ProfileDirectory) PetsOf(ctx context.Context, userID string) ([]string, error) {
	var pets []models.PetSummary
	err := d.Dynamo.ScanItems(ctx, PetsTable,
		"ownerId = :owner",
		map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: userID},
		}, nil, &pets)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets for user: %w", err)
	}

	ids := make([]string, 0, len(pets))
	for _, p := range pets {
		ids = append(ids, p.PetID)
	}
	return ids, nil
}

// ListMatchablePets returns match-mode pets not owned by ownerID, for the
// candidate feed.
func (d *ProfileDirectory) ListMatchablePets(ctx context.Context, ownerID string) ([]models.PetSummary, error) {
	var pets []models.PetSummary
	err := d.Dynamo.ScanItems(ctx, PetsTable,
		"ownerId <> :owner AND matchMode = :on",
		map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
			":on":    &types.AttributeValueMemberBOOL{Value: true},
		}, nil, &pets)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchable pets: %w", err)
	}
	return pets, nil
}
