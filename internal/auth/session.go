package auth

import (
	"context"
	stderrors "errors"
	"log"
	"strings"
	"time"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"
)

// SessionStore отдаёт записи из таблицы session, заполняемой внешней системой
// аутентификации. Хранилище только читается, сессии здесь не создаются и не продлеваются.
type SessionStore interface {
	FindSessionByToken(ctx context.Context, token string) (*models.Session, error)
}

type Validator struct {
	store SessionStore
}

func NewValidator(store SessionStore) *Validator {
	if store == nil {
		return nil
	}
	return &Validator{store: store}
}

// ExtractBearerToken разбирает заголовок Authorization вида "Bearer <token>".
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.ErrMissingAuthHeader
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.ErrMalformedAuthHeader
	}

	return parts[1], nil
}

// Validate проверяет токен по таблице сессий и возвращает идентификатор владельца.
// Любая неожиданная ошибка хранилища превращается в ErrSessionCheckFailed,
// чтобы вызывающий код всегда мог ответить 401.
func (v *Validator) Validate(ctx context.Context, token string) (string, error) {
	session, err := v.store.FindSessionByToken(ctx, token)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidSessionToken) {
			return "", errors.ErrInvalidSessionToken
		}
		log.Println("[ERROR] Не удалось проверить сессию:", err)
		return "", errors.ErrSessionCheckFailed
	}

	if !time.Now().Before(session.ExpiresAt) {
		return "", errors.ErrSessionExpired
	}

	return session.UserID, nil
}
