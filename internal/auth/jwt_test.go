package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"todoapp/internal/domain/errors"
)

const testSecret = "shouldbeinVaultsecret"

func signTestToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	tokenString, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenString
}

func TestDecodeJWT(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
		want  struct {
			sub string
			err error
		}
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				return signTestToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
					"sub": "user123",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
			},
			want: struct {
				sub string
				err error
			}{
				sub: "user123",
				err: nil,
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signTestToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
					"sub": "user123",
					"exp": time.Now().Add(-time.Hour).Unix(),
				})
			},
			want: struct {
				sub string
				err error
			}{
				err: errors.ErrJWTExpired,
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signTestToken(t, jwt.SigningMethodHS256, "othersecret", jwt.MapClaims{
					"sub": "user123",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
			},
			want: struct {
				sub string
				err error
			}{
				err: errors.ErrInvalidJWT,
			},
		},
		{
			name: "missing sub claim",
			token: func(t *testing.T) string {
				return signTestToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
					"exp": time.Now().Add(time.Hour).Unix(),
				})
			},
			want: struct {
				sub string
				err error
			}{
				err: errors.ErrMissingSubClaim,
			},
		},
		{
			name: "disallowed signing method",
			token: func(t *testing.T) string {
				return signTestToken(t, jwt.SigningMethodHS512, testSecret, jwt.MapClaims{
					"sub": "user123",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
			},
			want: struct {
				sub string
				err error
			}{
				err: errors.ErrInvalidJWT,
			},
		},
		{
			name: "not a jwt at all",
			token: func(t *testing.T) string {
				return "opaque-session-token"
			},
			want: struct {
				sub string
				err error
			}{
				err: errors.ErrInvalidJWT,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := DecodeJWT(tt.token(t), testSecret)

			if tt.want.err != nil {
				assert.ErrorIs(t, err, tt.want.err)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want.sub, claims["sub"])
			}
		})
	}
}
