package service

import "errors"

// Ошибки уровня сервисов
var (
	// ErrParticipantPersistence — поиск/вставка участника не удались.
	// Отправка падает целиком: автоматический ретрай мог бы создать
	// вторую личность при повторной вставке.
	ErrParticipantPersistence = errors.New("participant database operation failed")

	// ErrAuditNotFound — для вейвера нет ни одной записи аудита
	ErrAuditNotFound = errors.New("audit trail not found")

	// ErrSignedURLFailed — не удалось выписать подписанную ссылку на объект
	ErrSignedURLFailed = errors.New("signed url generation failed")
)
