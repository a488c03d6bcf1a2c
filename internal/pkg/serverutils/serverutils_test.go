package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/session"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

func strPtr(s string) *string { return &s }

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(dto.CreateNoteRequest{Title: "ok"}))

	err := ValidateRequest(dto.CreateNoteRequest{})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.ErrorContains(t, err, "title is required")

	err = ValidateRequest(dto.UpdateNoteRequest{Title: strPtr("")})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, ValidateRequest(dto.UpdateNoteRequest{Content: strPtr("")}))

	err = ValidateRequest(dto.LoginRequest{Email: "nope", Password: "x"})
	assert.ErrorContains(t, err, "email must be a valid email")
}

func TestErrorHandlerMiddleware_Classifies(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: title is required", apperror.ErrValidation), http.StatusBadRequest},
		{apperror.ErrNotFound, http.StatusNotFound},
		{apperror.ErrUnauthenticated, http.StatusUnauthorized},
		{apperror.ErrInvalidCredentials, http.StatusUnauthorized},
		{fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
		app.Get("/", func(*fiber.Ctx) error { return tc.err })

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)

		var body BaseResponse[any]
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, json.Unmarshal(raw, &body))

		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.status, body.Code)
		assert.False(t, body.Success)
	}
}

func TestErrorHandlerMiddleware_HidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/", func(*fiber.Ctx) error { return errors.New("password=hunter2") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.NotContains(t, string(raw), "hunter2")
}

func newProtectedApp(t *testing.T) (*fiber.App, contract.TokenDenylist) {
	t.Helper()
	denylist := memory.NewTokenDenylist()

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/me", NewJwtMiddleware(secret, denylist), func(ctx *fiber.Ctx) error {
		userId, err := UserId(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(userId.String())
	})
	return app, denylist
}

func get(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestJwtMiddleware(t *testing.T) {
	app, denylist := newProtectedApp(t)
	user := &entity.User{Id: uuid.New(), Email: "a@example.com", Name: "a"}

	token, claims, err := session.Issue(secret, user, time.Hour, time.Now())
	require.NoError(t, err)

	status, body := get(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.Id.String(), body)

	status, _ = get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = get(t, app, token)
	assert.Equal(t, http.StatusUnauthorized, status, "scheme is required")

	status, _ = get(t, app, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, status)

	expired, _, err := session.Issue(secret, user, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	status, _ = get(t, app, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, status)

	forged, _, err := session.Issue([]byte("other-secret"), user, time.Hour, time.Now())
	require.NoError(t, err)
	status, _ = get(t, app, "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, status)

	require.NoError(t, denylist.Revoke(context.Background(), claims.ID, time.Hour))
	status, body = get(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Token revoked")
}
