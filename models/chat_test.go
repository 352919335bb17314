package models

import "testing"

func TestChatParticipants(t *testing.T) {
	chat := Chat{Participants: []string{"user-a", "user-b"}}

	if !chat.HasParticipant("user-a") || chat.HasParticipant("user-z") {
		t.Fatal("participant membership wrong")
	}
	if got := chat.OtherParticipant("user-a"); got != "user-b" {
		t.Fatalf("expected user-b, got %q", got)
	}
	if got := chat.OtherParticipant("user-z"); got != "" {
		t.Fatalf("outsider has no counterpart, got %q", got)
	}
}

func TestChatFlags(t *testing.T) {
	chat := Chat{
		MutedBy:   []string{"user-a"},
		DeletedBy: []string{"user-b"},
	}
	if !chat.IsMutedBy("user-a") || chat.IsMutedBy("user-b") {
		t.Fatal("mute flag wrong")
	}
	if !chat.IsDeletedBy("user-b") || chat.IsDeletedBy("user-a") {
		t.Fatal("delete flag wrong")
	}
}
