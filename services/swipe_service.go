package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/11Rojas/mascoticas-backend/models"
)

// SwipeService is the ledger of directional like/nope actions between pets.
type SwipeService struct {
	Swipes SwipeStore
}

// RecordSwipe upserts a swipe on the unique (swiper, swiped) key and returns
// the previous kind if the pair had been swiped before, so callers can detect
// a kind flip without a second read.
func (s *SwipeService) RecordSwipe(ctx context.Context, swiperPetID, swipedPetID, kind string) (string, error) {
	if !models.IsValidSwipeKind(kind) {
		return "", models.NewValidationError("invalid swipe kind: %q", kind)
	}
	if swiperPetID == "" || swipedPetID == "" {
		return "", models.NewValidationError("swiperPetId and swipedPetId are required")
	}
	if swiperPetID == swipedPetID {
		return "", models.NewValidationError("a pet cannot swipe on itself")
	}

	previous, err := s.Swipes.Upsert(ctx, models.Swipe{
		SwiperPetID: swiperPetID,
		SwipedPetID: swipedPetID,
		Kind:        kind,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("failed to record swipe: %w", err)
	}

	if previous != nil && previous.Kind != kind {
		log.Printf("🔄 Swipe %s -> %s flipped %s to %s", swiperPetID, swipedPetID, previous.Kind, kind)
	}
	if previous == nil {
		return "", nil
	}
	return previous.Kind, nil
}

// HasLiked reports whether pet a has an outstanding like toward pet b.
// Point lookup on the primary key.
func (s *SwipeService) HasLiked(ctx context.Context, a, b string) (bool, error) {
	swipe, err := s.Swipes.Get(ctx, a, b)
	if err != nil {
		return false, err
	}
	return swipe != nil && swipe.Kind == models.SwipeKindLike, nil
}

// ListBySwiped returns every swipe received by the given pet.
func (s *SwipeService) ListBySwiped(ctx context.Context, petID string) ([]models.Swipe, error) {
	return s.Swipes.ListBySwiped(ctx, petID)
}

// ListReceivedLikes returns the likes targeting any of the given pets,
// excluding swipers the pets have already swiped back in any direction.
// This backs the "who liked me" pending view.
func (s *SwipeService) ListReceivedLikes(ctx context.Context, petIDs []string) ([]models.Swipe, error) {
	reciprocated := make(map[string]struct{})
	for _, petID := range petIDs {
		outgoing, err := s.Swipes.ListBySwiper(ctx, petID)
		if err != nil {
			return nil, err
		}
		for _, swipe := range outgoing {
			reciprocated[swipe.SwipedPetID] = struct{}{}
		}
	}

	var pending []models.Swipe
	for _, petID := range petIDs {
		incoming, err := s.Swipes.ListBySwiped(ctx, petID)
		if err != nil {
			return nil, err
		}
		for _, swipe := range incoming {
			if swipe.Kind != models.SwipeKindLike {
				continue
			}
			if _, done := reciprocated[swipe.SwiperPetID]; done {
				continue
			}
			pending = append(pending, swipe)
		}
	}
	return pending, nil
}

// SwipedPetIDs returns every pet the swiper has already acted on, used to
// exclude seen profiles from the candidate feed.
func (s *SwipeService) SwipedPetIDs(ctx context.Context, petID string) (map[string]struct{}, error) {
	outgoing, err := s.Swipes.ListBySwiper(ctx, petID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(outgoing))
	for _, swipe := range outgoing {
		seen[swipe.SwipedPetID] = struct{}{}
	}
	return seen, nil
}

// RemovePet deletes every swipe involving the pet. Cascading pet deletion.
func (s *SwipeService) RemovePet(ctx context.Context, petID string) error {
	return s.Swipes.DeleteAllForPet(ctx, petID)
}
