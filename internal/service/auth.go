package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/config"
	"github.com/folionet/folionet/internal/domain"
	"github.com/folionet/folionet/jwt"
)

var tracer = otel.Tracer("auth")

// AuthService proves control of a wallet address: it issues signing
// challenges, verifies the resulting signatures and mints server-signed
// session tokens.
type AuthService struct {
	config config.Marketplace
	rdb    *redis.Client
}

func NewAuthService(
	conf config.Marketplace,
	rdb *redis.Client,
) *AuthService {
	return &AuthService{
		config: conf,
		rdb:    rdb,
	}
}

type AuthResult struct {
	Address string
}

func challengeKey(address string) string {
	return "challenge:" + address
}

// IssueChallenge stores a fresh nonce for the address and returns the
// message the wallet must sign.
func (s *AuthService) IssueChallenge(ctx context.Context, address string) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.IssueChallenge")
	defer span.End()

	if !folionet.IsHexAddress(address) {
		return "", domain.ValidationError{Message: "invalid wallet address"}
	}
	normalized := folionet.NormalizeAddress(address)

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to generate nonce")
	}
	nonce := hex.EncodeToString(buf)

	message := folionet.ChallengeMessage(s.config.FQDN, normalized, nonce)

	err := s.rdb.Set(ctx, challengeKey(normalized), message, s.config.ChallengeTTL).Err()
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to store challenge")
	}

	return message, nil
}

// VerifySignature consumes the outstanding challenge for the address,
// checks the personal-sign signature against it and returns a session
// token. The challenge is removed atomically so a signature cannot be
// replayed.
func (s *AuthService) VerifySignature(ctx context.Context, address string, signature string) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.VerifySignature")
	defer span.End()

	normalized := folionet.NormalizeAddress(address)

	message, err := s.rdb.GetDel(ctx, challengeKey(normalized)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.AuthorizationError{Message: "no outstanding challenge for address"}
		}
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to load challenge")
	}

	signer, err := RecoverSigner(message, signature)
	if err != nil {
		span.RecordError(err)
		return "", domain.AuthorizationError{Message: "invalid signature"}
	}
	if signer != normalized {
		return "", domain.AuthorizationError{Message: "signature does not match address"}
	}

	now := time.Now()
	claims := jwt.Claims{
		Issuer:         s.config.ServerAddress,
		Subject:        normalized,
		Audience:       s.config.FQDN,
		ExpirationTime: strconv.FormatInt(now.Add(s.config.SessionTTL).Unix(), 10),
		IssuedAt:       strconv.FormatInt(now.Unix(), 10),
		JWTID:          uuid.NewString(),
	}

	token, err := jwt.Create(claims, s.config.PrivateKey)
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to create session token")
	}

	return token, nil
}

// AuthToken validates a session token and returns the wallet address it
// was issued to.
func (s *AuthService) AuthToken(ctx context.Context, token string) (*AuthResult, error) {
	_, span := tracer.Start(ctx, "Auth.Service.AuthToken")
	defer span.End()

	_, claims, signer, err := jwt.Validate(token)
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return nil, err
	}

	if signer != s.config.ServerAddress {
		err := fmt.Errorf("token not signed by this marketplace")
		span.RecordError(err)
		return nil, err
	}

	if claims.Audience != s.config.FQDN {
		err := fmt.Errorf("jwt audience mismatch: expected %s, got %s", s.config.FQDN, claims.Audience)
		span.RecordError(err)
		return nil, err
	}

	if claims.Subject == "" {
		err := fmt.Errorf("missing subject")
		span.RecordError(err)
		return nil, err
	}

	return &AuthResult{Address: claims.Subject}, nil
}

// RecoverSigner returns the lowercase address that produced an EIP-191
// personal-sign signature over message.
func RecoverSigner(message string, signature string) (string, error) {
	sigHex := strings.TrimPrefix(signature, "0x")
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return "", errors.Wrap(err, "malformed signature")
	}
	if len(sig) != 65 {
		return "", fmt.Errorf("invalid signature length: %d", len(sig))
	}

	// wallets emit V as 27/28, crypto.SigToPub wants 0/1
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pubkey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return "", errors.Wrap(err, "failed to recover public key")
	}

	return strings.ToLower(crypto.PubkeyToAddress(*pubkey).Hex()), nil
}
