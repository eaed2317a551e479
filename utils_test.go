package folionet

import (
	"strings"
	"testing"
)

func TestNormalizeAddress(t *testing.T) {
	cases := map[string]string{
		"0xABCdef":    "0xabcdef",
		"  0xABC \n":  "0xabc",
		"0xabc":       "0xabc",
	}
	for in, want := range cases {
		if got := NormalizeAddress(in); got != want {
			t.Fatalf("NormalizeAddress(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsHexAddress(t *testing.T) {
	valid := "0x" + strings.Repeat("ab", 20)
	if !IsHexAddress(valid) {
		t.Fatalf("expected %s to be a valid address", valid)
	}
	for _, invalid := range []string{"", "0x123", "not-an-address"} {
		if IsHexAddress(invalid) {
			t.Fatalf("expected %q to be invalid", invalid)
		}
	}
}

func TestGetTokenInfo(t *testing.T) {
	token, ok := GetTokenInfo("eth")
	if !ok {
		t.Fatalf("expected eth to resolve")
	}
	if token.Symbol != "ETH" {
		t.Fatalf("expected canonical symbol ETH, got %s", token.Symbol)
	}

	if _, ok := GetTokenInfo("DOGE"); ok {
		t.Fatalf("expected DOGE to be unknown")
	}
}

func TestChallengeMessageContainsParts(t *testing.T) {
	msg := ChallengeMessage("market.example.com", "0xabc", "nonce123")
	for _, part := range []string{"market.example.com", "0xabc", "nonce123"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("expected challenge message to contain %q: %s", part, msg)
		}
	}
}
