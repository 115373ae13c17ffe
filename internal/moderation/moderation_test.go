package moderation

import "testing"

func TestIsScamOrSpam(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"Get your FREE NITRO here!!!", true},
		{"click here to claim your prize", true},
		{"please share your seed phrase to recover", true},
		{"Connect Wallet To Claim the drop", true},
		{"has anyone watched frieren?", false},
		{"the nitro brand shoes are nice", false},
		{"", false},
		{"claim rewards", true}, // "claim reward" is a prefix
	}
	for _, tt := range tests {
		if got := IsScamOrSpam(tt.message); got != tt.want {
			t.Errorf("IsScamOrSpam(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
