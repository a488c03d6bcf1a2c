package serverutils

import (
	"strings"

	"notekeeper-be/internal/pkg/session"
	"notekeeper-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

// NewJwtMiddleware authenticates `Authorization: Bearer <token>` requests. Anything other than a
// valid, unexpired, unrevoked token is rejected with 401 before the handler runs.
func NewJwtMiddleware(secret []byte, denylist contract.TokenDenylist) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenStr == "" {
			return unauthorized(ctx, "Missing token")
		}

		claims, err := session.Parse(secret, tokenStr)
		if err != nil {
			return unauthorized(ctx, "Invalid token")
		}

		if denylist != nil {
			revoked, err := denylist.IsRevoked(ctx.UserContext(), claims.ID)
			if err != nil {
				return err
			}
			if revoked {
				return unauthorized(ctx, "Token revoked")
			}
		}

		ctx.Locals(LocalUserId, claims.UserId)
		ctx.Locals(LocalTokenId, claims.ID)
		ctx.Locals(LocalTokenExp, claims.ExpiresAt.Time)
		return ctx.Next()
	}
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, message))
}
