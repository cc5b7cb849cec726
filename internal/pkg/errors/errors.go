package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или объект хранилища не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrFetchFailed используется при транспортных ошибках чтения (БД/хранилище недоступны).
	// Отличается от ErrNotFound: такую ошибку безопасно ретраить, 404 — нет.
	ErrFetchFailed = errors.New("upstream fetch failed")

	// ErrRenderFailed используется при ошибках шаблонизации или рендеринга PDF.
	ErrRenderFailed = errors.New("render failed")

	// ErrUnauthorized используется для ошибок авторизации (неверный админ-ключ).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrNotConfigured используется, когда обязательный внешний сервис не инициализирован
	// (например, не настроено объектное хранилище).
	ErrNotConfigured = errors.New("backing service not configured")
)
