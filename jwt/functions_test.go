package jwt

import (
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestCreateValidateRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	privatekey := hex.EncodeToString(crypto.FromECDSA(key))
	wantSigner := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	claims := Claims{
		Issuer:         wantSigner,
		Subject:        "0xabc0000000000000000000000000000000000abc",
		Audience:       "market.example.com",
		ExpirationTime: strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10),
	}

	token, err := Create(claims, privatekey)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	header, parsed, signer, err := Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if header.Algorithm != "ES256K" {
		t.Fatalf("unexpected algorithm %s", header.Algorithm)
	}
	if parsed.Subject != claims.Subject {
		t.Fatalf("expected subject %s got %s", claims.Subject, parsed.Subject)
	}
	if signer != wantSigner {
		t.Fatalf("expected signer %s got %s", wantSigner, signer)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	claims := Claims{
		Subject:        "0xabc0000000000000000000000000000000000abc",
		ExpirationTime: strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10),
	}

	token, err := Create(claims, hex.EncodeToString(crypto.FromECDSA(key)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, _, _, err := Validate(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, _, _, err := Validate("not-a-jwt"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}
