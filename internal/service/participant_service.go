package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	"github.com/yourusername/waiver-api/internal/domain/repository"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// ParticipantInput — данные участника из валидированной формы
type ParticipantInput struct {
	FullName    string
	DateOfBirth string
	Email       string
	Phone       string
	AddressLine string
	City        string
	State       string
	Zip         string
}

// ParticipantService сопоставляет входящую личность с существующей записью
// или создает новую. Записи участников никогда не обновляются этим путем:
// для полей личности действует first-write-wins.
type ParticipantService struct {
	participantRepo repository.ParticipantRepository
}

// NewParticipantService создает новый сервис участников
func NewParticipantService(participantRepo repository.ParticipantRepository) *ParticipantService {
	return &ParticipantService{participantRepo: participantRepo}
}

// MatchOrCreate возвращает id участника для входящей личности.
// Кандидат ищется по точному совпадению email и даты рождения; совпадение
// принимается только если указанный телефон равен одному из сохраненных.
// Несовпадение телефона означает нового участника — тихое слияние запрещено.
func (s *ParticipantService) MatchOrCreate(input *ParticipantInput) (string, error) {
	existing, err := s.participantRepo.FindByEmailAndDOB(input.Email, input.DateOfBirth)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("%w: %v", ErrParticipantPersistence, err)
	}

	phone := strings.TrimSpace(input.Phone)
	if existing != nil && existing.MatchesPhone(phone) {
		return existing.ID, nil
	}

	participant := &entity.Participant{
		FullName:    input.FullName,
		DateOfBirth: input.DateOfBirth,
		Email:       input.Email,
		AddressLine: nilIfEmpty(input.AddressLine),
		City:        nilIfEmpty(input.City),
		State:       nilIfEmpty(input.State),
		Zip:         nilIfEmpty(input.Zip),
		CellPhone:   &phone,
		HomePhone:   nil,
	}
	if err := s.participantRepo.Create(participant); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParticipantPersistence, err)
	}
	return participant.ID, nil
}

// nilIfEmpty возвращает nil для пустой после trim строки
func nilIfEmpty(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
