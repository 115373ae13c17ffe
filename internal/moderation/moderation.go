// Package moderation flags scam and spam messages by keyword.
package moderation

import "strings"

// scamKeywords are matched as case-insensitive substrings. Phrases, not
// single words, to keep false positives down.
var scamKeywords = []string{
	"free nitro", "nitro giveaway", "discord nitro", "claim nitro", "nitro reward",
	"claim airdrop", "free airdrop", "airdrop reward", "claim your airdrop",
	"seed phrase", "private key", "mnemonic", "wallet seed", "recover wallet",
	"claim reward", "claim your reward", "free money", "crypto giveaway",
	"click here to claim", "verify your wallet", "connect wallet to claim",
}

// IsScamOrSpam reports whether the message contains a known scam phrase.
func IsScamOrSpam(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range scamKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
