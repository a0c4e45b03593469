package utils

import (
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// bech32-style addresses (xion1...) plus 0x hex addresses
	walletRegex = regexp.MustCompile(`^([a-z]{2,10}1[a-z0-9]{20,80}|0x[a-fA-F0-9]{40})$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidateWalletAddress(address string) bool {
	return walletRegex.MatchString(address)
}
