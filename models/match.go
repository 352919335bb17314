package models

// Match statuses
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusRejected = "rejected"
)

// Match is the record created once a mutual like is detected. The table is
// keyed by PairKey so that the storage layer itself rejects a second creation
// attempt for the same unordered pair.
type Match struct {
	PairKey   string `dynamodbav:"pairKey" json:"-"` // ✅ Partition Key: sorted "petA#petB"
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	PetA      string `dynamodbav:"petA" json:"petA"`
	PetB      string `dynamodbav:"petB" json:"petB"`
	Status    string `dynamodbav:"status" json:"status"` // pending, accepted, rejected
	ChatID    string `dynamodbav:"chatId,omitempty" json:"chatId,omitempty"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// MatchIDIndex is the GSI used to look up a match by its id
const MatchIDIndex = "matchId-index"

// PairKey builds the order-independent composite key for a pet pair.
func PairKey(petA, petB string) string {
	if petB < petA {
		petA, petB = petB, petA
	}
	return petA + "#" + petB
}

// Involves reports whether petID is one of the two pets in the match.
func (m *Match) Involves(petID string) bool {
	return m.PetA == petID || m.PetB == petID
}
