package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/google/uuid"
)

// MatchService detects mutual likes and owns the match lifecycle: creation
// with its chat and notifications, listing, and unmatching.
type MatchService struct {
	Swipes        *SwipeService
	Matches       MatchStore
	Chats         ChatStore
	Messages      MessageStore
	Notifications *NotificationService
	Directory     ProfileDirectory
	Broadcaster   Broadcaster
	Push          Notifier
	Tasks         TaskRunner
}

// DetectResult reports what a like produced.
type DetectResult struct {
	Match   *models.Match
	Created bool
}

// HandleLike runs after a "like" swipe is recorded. If the target has not
// liked back it notifies the target's owner and stops. On a mutual like it
// creates the match and chat exactly once: creation is a single conditional
// insert keyed by the sorted pair, so of two concurrent detections one wins
// the insert and the other observes the winner's match.
func (s *MatchService) HandleLike(ctx context.Context, swiperPetID, targetPetID string) (*DetectResult, error) {
	liked, err := s.Swipes.HasLiked(ctx, targetPetID, swiperPetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reciprocal like: %w", err)
	}

	if !liked {
		s.notifyOneSidedLike(ctx, targetPetID)
		return &DetectResult{}, nil
	}

	petA, petB := swiperPetID, targetPetID
	if petB < petA {
		petA, petB = petB, petA
	}
	match := models.Match{
		PairKey:   models.PairKey(petA, petB),
		MatchID:   uuid.NewString(),
		PetA:      petA,
		PetB:      petB,
		Status:    models.MatchStatusAccepted,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	stored, created, err := s.Matches.InsertIfAbsent(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	if !created {
		// Lost the creation race, or the pair re-liked after a kind flip.
		// The existing match is the answer; no duplicate writes.
		log.Printf("ℹ️ Match already exists for pair %s", match.PairKey)
		if stored.ChatID == "" {
			return s.finishChatlessMatch(ctx, stored, swiperPetID, targetPetID)
		}
		return &DetectResult{Match: stored}, nil
	}

	log.Printf("🐾 It's a match! %s <-> %s (matchId: %s)", petA, petB, stored.MatchID)

	chat, err := s.createChatForMatch(ctx, stored, swiperPetID, targetPetID)
	if err != nil {
		return nil, err
	}
	stored.ChatID = chat.ChatID

	s.announceMatch(ctx, stored, swiperPetID, targetPetID, chat)
	return &DetectResult{Match: stored, Created: true}, nil
}

// finishChatlessMatch completes a match whose earlier detection won the
// insert but failed before its chat existed. A fresh read narrows the
// window where the winner is still mid-creation.
func (s *MatchService) finishChatlessMatch(ctx context.Context, stale *models.Match, swiperPetID, targetPetID string) (*DetectResult, error) {
	stored, err := s.Matches.GetByPair(ctx, stale.PetA, stale.PetB)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = stale
	}
	if stored.ChatID != "" {
		return &DetectResult{Match: stored}, nil
	}

	log.Printf("🔧 Match %s has no chat, completing creation", stored.MatchID)
	chat, err := s.createChatForMatch(ctx, stored, swiperPetID, targetPetID)
	if err != nil {
		return nil, err
	}
	stored.ChatID = chat.ChatID
	s.announceMatch(ctx, stored, swiperPetID, targetPetID, chat)
	return &DetectResult{Match: stored}, nil
}

func (s *MatchService) createChatForMatch(ctx context.Context, match *models.Match, swiperPetID, targetPetID string) (*models.Chat, error) {
	swiperOwner, err := s.Directory.OwnerOf(ctx, swiperPetID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve swiper owner: %w", err)
	}
	targetOwner, err := s.Directory.OwnerOf(ctx, targetPetID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target owner: %w", err)
	}

	chat := models.Chat{
		ChatID:       uuid.NewString(),
		MatchID:      match.MatchID,
		Participants: []string{swiperOwner, targetOwner},
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Chats.Insert(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat for match: %w", err)
	}
	if err := s.Matches.SetChatID(ctx, match.PairKey, chat.ChatID); err != nil {
		return nil, fmt.Errorf("failed to link chat to match: %w", err)
	}
	return &chat, nil
}

// announceMatch creates both owners' notifications and hands realtime and
// push delivery to the dispatcher. Failures here only degrade UX.
func (s *MatchService) announceMatch(ctx context.Context, match *models.Match, swiperPetID, targetPetID string, chat *models.Chat) {
	swiperName, _ := s.Directory.PetName(ctx, swiperPetID)
	targetName, _ := s.Directory.PetName(ctx, targetPetID)
	swiperOwner := chat.Participants[0]
	targetOwner := chat.Participants[1]

	title := "¡Nuevo Match! 🐾"
	msgSwiper := fmt.Sprintf("¡Match con %s! Ya pueden chatear.", targetName)
	msgTarget := fmt.Sprintf("¡Tu mascota %s tiene un match con %s!", targetName, swiperName)

	if err := s.Notifications.Create(ctx, swiperOwner, title, msgSwiper, models.NotificationTypeMatch); err != nil {
		log.Printf("⚠️ Failed to create match notification for %s: %v", swiperOwner, err)
	}
	if err := s.Notifications.Create(ctx, targetOwner, title, msgTarget, models.NotificationTypeMatch); err != nil {
		log.Printf("⚠️ Failed to create match notification for %s: %v", targetOwner, err)
	}

	matched := *match
	s.Tasks.Submit("match-announce", func(ctx context.Context) error {
		event := models.NewMatchEvent{Type: models.EventTypeNewMatch, Match: matched}
		s.Broadcaster.PublishToUser(swiperOwner, event)
		s.Broadcaster.PublishToUser(targetOwner, event)

		// Match pushes carry no chat id; they are never muted.
		if err := s.Push.Notify(ctx, swiperOwner, title, msgSwiper, "/dashboard/chats", ""); err != nil {
			log.Printf("⚠️ Push to %s failed: %v", swiperOwner, err)
		}
		if err := s.Push.Notify(ctx, targetOwner, title, msgTarget, "/dashboard/chats", ""); err != nil {
			log.Printf("⚠️ Push to %s failed: %v", targetOwner, err)
		}
		return nil
	})
}

// notifyOneSidedLike tells the target's owner someone liked their pet,
// without revealing who.
func (s *MatchService) notifyOneSidedLike(ctx context.Context, targetPetID string) {
	owner, err := s.Directory.OwnerOf(ctx, targetPetID)
	if err != nil {
		log.Printf("⚠️ Failed to resolve owner for liked pet %s: %v", targetPetID, err)
		return
	}
	petName, _ := s.Directory.PetName(ctx, targetPetID)

	title := "¡Le gustas a alguien! ❤️"
	body := fmt.Sprintf("A alguien le gusta tu mascota %s. ¡Desliza para descubrir quién es!", petName)

	if err := s.Notifications.Create(ctx, owner, title, body, models.NotificationTypeMatch); err != nil {
		log.Printf("⚠️ Failed to create like notification: %v", err)
	}

	s.Tasks.Submit("like-push", func(ctx context.Context) error {
		return s.Push.Notify(ctx, owner, title, body, "/dashboard/matches", "")
	})
}

// ListAccepted returns the accepted matches involving any of the user's pets.
func (s *MatchService) ListAccepted(ctx context.Context, userID string) ([]models.Match, error) {
	petIDs, err := s.Directory.PetsOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var matches []models.Match
	for _, petID := range petIDs {
		forPet, err := s.Matches.ListForPet(ctx, petID)
		if err != nil {
			return nil, err
		}
		for _, m := range forPet {
			if m.Status != models.MatchStatusAccepted {
				continue
			}
			if _, dup := seen[m.PairKey]; dup {
				continue
			}
			seen[m.PairKey] = struct{}{}
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// ListPendingLikes returns the received likes the user's pets have not
// swiped back on.
func (s *MatchService) ListPendingLikes(ctx context.Context, userID string) ([]models.Swipe, error) {
	petIDs, err := s.Directory.PetsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Swipes.ListReceivedLikes(ctx, petIDs)
}

// ListCandidates returns matchable pets the swiper has not acted on yet,
// with pets that already liked the swiper ordered first.
func (s *MatchService) ListCandidates(ctx context.Context, petID string) ([]models.PetSummary, error) {
	owner, err := s.Directory.OwnerOf(ctx, petID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Directory.ListMatchablePets(ctx, owner)
	if err != nil {
		return nil, err
	}
	swiped, err := s.Swipes.SwipedPetIDs(ctx, petID)
	if err != nil {
		return nil, err
	}
	incoming, err := s.Swipes.ListBySwiped(ctx, petID)
	if err != nil {
		return nil, err
	}
	likedMe := make(map[string]struct{})
	for _, swipe := range incoming {
		if swipe.Kind == models.SwipeKindLike {
			likedMe[swipe.SwiperPetID] = struct{}{}
		}
	}

	var result []models.PetSummary
	for _, candidate := range candidates {
		if _, seen := swiped[candidate.PetID]; seen {
			continue
		}
		_, candidate.LikedMe = likedMe[candidate.PetID]
		result = append(result, candidate)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LikedMe && !result[j].LikedMe
	})
	return result, nil
}

// Unmatch deletes the match and cascades to its chat and messages. Only an
// owner of one of the matched pets may unmatch.
func (s *MatchService) Unmatch(ctx context.Context, matchID, userID string) error {
	match, err := s.Matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if match == nil {
		return &models.NotFoundError{Resource: "match", ID: matchID}
	}

	ownerA, err := s.Directory.OwnerOf(ctx, match.PetA)
	if err != nil {
		return err
	}
	ownerB, err := s.Directory.OwnerOf(ctx, match.PetB)
	if err != nil {
		return err
	}
	if userID != ownerA && userID != ownerB {
		return &models.ForbiddenError{Reason: "only a participant may unmatch"}
	}

	if match.ChatID != "" {
		if err := s.Messages.DeleteAllForChat(ctx, match.ChatID); err != nil {
			return fmt.Errorf("failed to delete chat messages: %w", err)
		}
		if err := s.Chats.Delete(ctx, match.ChatID); err != nil {
			return fmt.Errorf("failed to delete chat: %w", err)
		}
	}
	if err := s.Matches.Delete(ctx, match.PairKey); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	log.Printf("💔 Match %s unmatched by %s", matchID, userID)
	return nil
}
