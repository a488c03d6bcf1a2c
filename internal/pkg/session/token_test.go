package session

import (
	"testing"
	"time"

	"notekeeper-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("session-test-secret-32-chars!!!!")

func testUser() *entity.User {
	return &entity.User{Id: uuid.New(), Email: "ada@example.com", Name: "ada"}
}

func TestIssueAndParse(t *testing.T) {
	user := testUser()
	now := time.Now()

	tok, issued, err := Issue(testSecret, user, time.Hour, now)
	require.NoError(t, err)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, user.Id.String(), claims.UserId)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, _, err := Issue(testSecret, testUser(), time.Hour, time.Now())
	require.NoError(t, err)

	_, err = Parse([]byte("another-secret-another-secret-!!"), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	tok, _, err := Issue(testSecret, testUser(), time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"jti":     "x",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RequiresExpiry(t *testing.T) {
	claims := jwt.MapClaims{"user_id": uuid.NewString(), "jti": "x"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RequiresUserId(t *testing.T) {
	claims := jwt.MapClaims{"user_id": "not-a-uuid", "jti": "x", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
