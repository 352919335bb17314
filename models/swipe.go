package models

// Swipe kinds
const (
	SwipeKindLike = "like"
	SwipeKindNope = "nope"
)

// Swipe is a directional like/nope from one pet profile toward another.
// There is at most one Swipe per ordered (swiperPetId, swipedPetId) pair;
// re-swiping overwrites the kind.
type Swipe struct {
	SwiperPetID string `dynamodbav:"swiperPetId" json:"swiperPetId"` // ✅ Partition Key
	SwipedPetID string `dynamodbav:"swipedPetId" json:"swipedPetId"` // ✅ Sort Key
	Kind        string `dynamodbav:"type" json:"type"`               // like, nope
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipes
const SwipesTable = "Swipes"

// SwipedPetIndex is the GSI used to look up likes received by a pet
const SwipedPetIndex = "swipedPetId-index"

// IsValidSwipeKind reports whether kind is one of the recognized swipe kinds.
func IsValidSwipeKind(kind string) bool {
	return kind == SwipeKindLike || kind == SwipeKindNope
}
