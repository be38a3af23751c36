package errors

import "errors"

var (
	ErrMissingAuthHeader   = errors.New("отсутствует заголовок авторизации")
	ErrMalformedAuthHeader = errors.New("некорректный формат заголовка авторизации, ожидается 'Bearer <token>'")
	ErrInvalidSessionToken = errors.New("недействительный токен сессии")
	ErrSessionExpired      = errors.New("срок действия сессии истёк")
	ErrSessionCheckFailed  = errors.New("не удалось проверить сессию")
	ErrForbidden           = errors.New("доступ запрещён: нельзя обращаться к ресурсам другого пользователя")
	ErrTaskNotFound        = errors.New("задача не найдена")
	ErrValidationFailed    = errors.New("ошибка валидации")
	ErrInternalServer      = errors.New("внутренняя ошибка сервера")
	ErrBadRequest          = errors.New("неверный запрос")

	ErrInvalidTitle       = errors.New("некорректный заголовок задачи")
	ErrInvalidDescription = errors.New("некорректное описание задачи")

	ErrInvalidJWT      = errors.New("недействительный JWT-токен")
	ErrJWTExpired      = errors.New("срок действия JWT-токена истёк")
	ErrMissingSubClaim = errors.New("в токене отсутствует идентификатор пользователя (sub)")

	ErrConfigFileReadFailed = errors.New("не удалось прочитать файл конфигурации")
	ErrConfigParseFailed    = errors.New("не удалось разобрать файл конфигурации")
	ErrConfigInvalidFormat  = errors.New("некорректный формат значения")
)
