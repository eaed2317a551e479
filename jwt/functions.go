package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

// Create creates a server signed JWT. The signature is a raw secp256k1
// signature over the keccak256 hash of "header.payload".
func Create(claims Claims, privatekey string) (string, error) {
	header := Header{
		Type:      "JWT",
		Algorithm: "ES256K",
	}
	headerStr, err := json.Marshal(header)
	if err != nil {
		return "", err
	}

	payloadStr, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	headerB64 := base64.RawURLEncoding.EncodeToString(headerStr)
	payloadB64 := base64.RawURLEncoding.EncodeToString(payloadStr)
	target := headerB64 + "." + payloadB64

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privatekey, "0x"))
	if err != nil {
		return "", err
	}

	hash := crypto.Keccak256([]byte(target))
	signatureBytes, err := crypto.Sign(hash, key)
	if err != nil {
		return "", err
	}
	signatureB64 := base64.RawURLEncoding.EncodeToString(signatureBytes)

	return target + "." + signatureB64, nil
}

// Validate checks the jwt signature and expiry. It returns the parsed
// header and claims together with the wallet address recovered from the
// signature; the caller decides whether that signer is trusted.
func Validate(jwt string) (*Header, *Claims, string, error) {

	split := strings.Split(jwt, ".")
	if len(split) != 3 {
		return nil, nil, "", fmt.Errorf("invalid jwt format")
	}

	var header Header
	headerBytes, err := base64.RawURLEncoding.DecodeString(split[0])
	if err != nil {
		return nil, nil, "", err
	}
	err = json.Unmarshal(headerBytes, &header)
	if err != nil {
		return nil, nil, "", err
	}

	// check jwt type
	if header.Type != "JWT" || header.Algorithm != "ES256K" {
		return nil, nil, "", fmt.Errorf("unsupported jwt type")
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(split[1])
	if err != nil {
		return nil, nil, "", err
	}

	var claims Claims
	err = json.Unmarshal(payloadBytes, &claims)
	if err != nil {
		return nil, nil, "", err
	}

	// check exp
	if claims.ExpirationTime != "" {
		exp, err := strconv.ParseInt(claims.ExpirationTime, 10, 64)
		if err != nil {
			return nil, nil, "", err
		}
		now := time.Now().Unix()
		if exp < now {
			return nil, nil, "", fmt.Errorf("jwt is already expired")
		}
	}

	// recover signer
	signatureBytes, err := base64.RawURLEncoding.DecodeString(split[2])
	if err != nil {
		return nil, nil, "", err
	}
	if len(signatureBytes) != 65 {
		return nil, nil, "", fmt.Errorf("invalid signature length")
	}

	hash := crypto.Keccak256([]byte(split[0] + "." + split[1]))
	pubkey, err := crypto.SigToPub(hash, signatureBytes)
	if err != nil {
		return nil, nil, "", err
	}
	signer := strings.ToLower(crypto.PubkeyToAddress(*pubkey).Hex())

	// all checks passed
	return &header, &claims, signer, nil
}
