package auth

import (
	stderrors "errors"

	"github.com/golang-jwt/jwt/v5"

	"todoapp/internal/domain/errors"
)

// DecodeJWT разбирает самодостаточный HS256-токен по общему секрету.
// Устаревший путь проверки: маршруты задач используют таблицу сессий,
// эта функция оставлена для отладки и возможного возврата к JWT.
func DecodeJWT(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrJWTExpired
		}
		return nil, errors.ErrInvalidJWT
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrInvalidJWT
	}

	if _, ok := claims["sub"]; !ok {
		return nil, errors.ErrMissingSubClaim
	}

	return claims, nil
}
