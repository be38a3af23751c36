package auth

import "todoapp/internal/domain/errors"

// VerifyUserAccess сверяет пользователя из токена с пользователем из пути запроса.
// Проверка выполняется до обращения к ресурсу, существование ресурса на результат не влияет.
func VerifyUserAccess(tokenUserID, pathUserID string) error {
	if tokenUserID != pathUserID {
		return errors.ErrForbidden
	}
	return nil
}
