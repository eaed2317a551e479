package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/domain"
	"github.com/folionet/folionet/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth         *service.AuthService
	requireProof bool
}

func NewAuthMiddleware(
	auth *service.AuthService,
	requireProof bool,
) *AuthMiddleware {
	return &AuthMiddleware{
		auth:         auth,
		requireProof: requireProof,
	}
}

// IdentifyIdentity resolves the caller's wallet address and stashes it in
// the request context. A Bearer session token proves control of the
// address; the bare wallet-address header is only honored when the
// deployment does not require proof. Failures leave the request
// unauthenticated rather than rejecting it; role gates happen later.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto checkAddressHeader
			}

			authType, token := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto checkAddressHeader
			}

			{
				result, err := s.auth.AuthToken(ctx, token)
				if err != nil {
					span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: s.auth.AuthToken failed"))
					goto checkAddressHeader
				}

				ctx = context.WithValue(ctx, domain.RequesterAddressCtxKey, result.Address)
				ctx = context.WithValue(ctx, domain.RequesterProvenCtxKey, true)
				span.SetAttributes(attribute.String("RequesterAddress", result.Address))

				goto done
			}
		}

	checkAddressHeader:
		if !s.requireProof {
			address := c.Request().Header.Get(domain.WalletAddressHeader)
			if address != "" {
				normalized := folionet.NormalizeAddress(address)
				ctx = context.WithValue(ctx, domain.RequesterAddressCtxKey, normalized)
				ctx = context.WithValue(ctx, domain.RequesterProvenCtxKey, false)
				span.SetAttributes(attribute.String("RequesterAddress", normalized))
			}
		}

	done:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
