package folionet

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

func JsonPrint(tag string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%s: error marshaling: %v\n", tag, err)
		return
	}
	fmt.Printf("%s: %s\n", tag, string(b))
}

// NormalizeAddress canonicalizes a wallet address for lookup and storage.
// Every read and write boundary must go through this, otherwise the same
// wallet ends up with multiple user rows differing only in letter case.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsHexAddress reports whether s looks like a 0x-prefixed EVM address.
func IsHexAddress(s string) bool {
	return common.IsHexAddress(strings.TrimSpace(s))
}

// ChallengeMessage composes the human-readable message a wallet signs to
// prove control of an address.
func ChallengeMessage(domain string, address string, nonce string) string {
	return fmt.Sprintf("%s wants you to sign in with your wallet %s\n\nNonce: %s", domain, address, nonce)
}
