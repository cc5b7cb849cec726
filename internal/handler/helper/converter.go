package helper

import (
	"github.com/yourusername/waiver-api/internal/handler/dto"
	"github.com/yourusername/waiver-api/internal/service"
)

// ConvertSubmitRequest преобразует проводной формат отправки в канонический
// вход сервиса. Преобразование тотально: отсутствующие вложенные объекты
// дают нулевые значения, а не панику.
func ConvertSubmitRequest(req *dto.SubmitWaiverRequest) service.SubmitWaiverInput {
	input := service.SubmitWaiverInput{
		Locale:         req.Locale,
		ContentVersion: req.ContentVersion,
	}

	if p := req.Participant; p != nil {
		input.Participant = service.ParticipantInput{
			FullName:    p.FullName,
			DateOfBirth: p.DateOfBirth,
			Email:       p.Email,
			Phone:       p.Phone,
			AddressLine: p.AddressLine,
			City:        p.City,
			State:       p.State,
			Zip:         p.Zip,
		}
	}

	if ec := req.EmergencyContact; ec != nil {
		input.EmergencyContact = service.EmergencyContactInput{
			Name:         ec.Name,
			Relationship: ec.Relationship,
			Phone:        ec.Phone,
			Email:        ec.Email,
		}
	}

	if m := req.MedicalInformation; m != nil {
		input.Medical = service.MedicalInput{
			HeartDisease:      m.HeartDisease.Bool(),
			ShortnessOfBreath: m.ShortnessOfBreath.Bool(),
			HighBloodPressure: m.HighBloodPressure.Bool(),
			Smoking:           m.Smoking.Bool(),
			Diabetes:          m.Diabetes.Bool(),
			FamilyHistory:     m.FamilyHistory.Bool(),
			Workouts:          m.Workouts.Bool(),
			Medication:        m.Medication.Bool(),
			Alcohol:           m.Alcohol.Bool(),

			LastPhysical:        m.LastPhysical,
			ExerciseRestriction: m.ExerciseRestriction,

			InjuriesKnees:         m.Injuries.Knees.Bool(),
			InjuriesLowerBack:     m.Injuries.LowerBack.Bool(),
			InjuriesNeckShoulders: m.Injuries.NeckShoulders.Bool(),
			InjuriesHipPelvis:     m.Injuries.HipPelvis.Bool(),
			InjuriesOtherHas:      m.Injuries.Other.Has.Bool(),
			InjuriesOtherDetails:  m.Injuries.Other.Details,

			HadRecentInjury:  m.HadRecentInjury.Bool(),
			InjuryDetails:    m.InjuryDetails,
			PhysicianCleared: m.PhysicianCleared.Bool(),
			ClearanceNotes:   m.ClearanceNotes,
		}
	}

	if lc := req.LegalConfirmation; lc != nil {
		input.Legal = service.LegalConfirmationInput{
			RiskInitials:            lc.RiskInitials,
			ReleaseInitials:         lc.ReleaseInitials,
			IndemnificationInitials: lc.IndemnificationInitials,
			MediaInitials:           lc.MediaInitials,
			AcceptedTerms:           lc.AcceptedTerms.Bool(),
		}
	}

	if sig := req.Signature; sig != nil {
		input.Signature = service.SignatureInput{
			PNGDataURL: sig.PNGDataURL,
			VectorJSON: sig.VectorJSON,
		}
	}

	if r := req.Review; r != nil {
		input.ReviewConfirmAccuracy = r.ConfirmAccuracy.Bool()
	}

	return input
}

// ValidateSubmitRequest перечисляет все отсутствующие обязательные поля.
// Возвращает пустой срез для валидного запроса.
func ValidateSubmitRequest(req *dto.SubmitWaiverRequest) []dto.FieldError {
	var errors []dto.FieldError

	require := func(ok bool, field string) {
		if !ok {
			errors = append(errors, dto.FieldError{Field: field, MessageKey: "validation.required"})
		}
	}

	p := req.Participant
	require(p != nil && p.FullName != "", "participant.full_name")
	require(p != nil && p.DateOfBirth != "", "participant.date_of_birth")
	require(p != nil && p.Email != "", "participant.email")
	require(p != nil && p.Phone != "", "participant.phone")

	lc := req.LegalConfirmation
	require(lc != nil && lc.RiskInitials != "", "legal_confirmation.risk_initials")
	require(lc != nil && lc.ReleaseInitials != "", "legal_confirmation.release_initials")
	require(lc != nil && lc.IndemnificationInitials != "", "legal_confirmation.indemnification_initials")
	require(lc != nil && lc.MediaInitials != "", "legal_confirmation.media_initials")
	require(lc != nil && lc.AcceptedTerms.Bool(), "legal_confirmation.accepted_terms")

	require(req.Signature != nil && req.Signature.PNGDataURL != "", "signature")

	return errors
}
