package serverutils

import (
	"fmt"

	"notekeeper-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by JwtMiddleware.
const (
	LocalUserId   = "user_id"
	LocalTokenId  = "token_id"
	LocalTokenExp = "token_exp"
)

// ParseBody decodes the request body, reporting malformed input as a validation error.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fmt.Errorf("%w: invalid request body", apperror.ErrValidation)
	}
	return nil
}

// UserId returns the authenticated user's id stored by JwtMiddleware.
func UserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals(LocalUserId).(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	return id, nil
}

// PathId parses a uuid route param. A malformed id cannot name an existing record,
// so it is reported as not found.
func PathId(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed id", apperror.ErrNotFound)
	}
	return id, nil
}

func RequestID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
