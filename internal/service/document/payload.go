package document

import (
	"strings"
	"time"

	"github.com/yourusername/waiver-api/internal/domain/entity"
)

// placeholder печатается вместо пустого значения: в юридическом документе
// не должно быть пустых строк, которые можно принять за неотвеченный вопрос
const placeholder = "—"

// MapOptions — внешние данные, не зависящие от строки документа
type MapOptions struct {
	LegalCopy    LegalCopy
	Organization Organization
	Title        string
	Version      string
	Locale       string
}

// MapPayload — чистая функция: строка представления + внешние данные -> payload шаблона.
// Любая комбинация NULL-полей допустима; каждое значение деградирует до плейсхолдера.
// Изображение подписи здесь не подставляется — его инъектирует вызывающая сторона.
func MapPayload(row *entity.WaiverDocumentRow, opts MapOptions) *Payload {
	yesNo := yesNoWords(opts.Locale)

	formatBool := func(v *bool) string {
		if v == nil {
			return placeholder
		}
		if *v {
			return yesNo[0]
		}
		return yesNo[1]
	}

	return &Payload{
		Document: Meta{
			Title:       opts.Title,
			Version:     opts.Version,
			Locale:      opts.Locale,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Organization: opts.Organization,
		Waiver: WaiverInfo{
			ID:       row.WaiverID,
			SignedAt: formatSignedAt(row),
		},
		Participant: ParticipantInfo{
			ID:           row.ParticipantID,
			FullName:     formatString(row.ParticipantFullName),
			DateOfBirth:  formatString(row.ParticipantDateOfBirth),
			Email:        formatString(row.ParticipantEmail),
			Phone:        formatPhone(row.ParticipantCellPhone, row.ParticipantHomePhone),
			AddressLine:  formatString(row.ParticipantAddressLine),
			CityStateZip: formatCityStateZip(row.ParticipantCity, row.ParticipantState, row.ParticipantZip),
		},
		EmergencyContact: ContactInfo{
			Name:         formatString(row.EmergencyContactName),
			Relationship: formatString(row.EmergencyContactRelationship),
			Phone:        formatString(row.EmergencyContactPhone),
			Email:        formatString(row.EmergencyContactEmail),
		},
		MedicalInformation: MedicalInfo{
			HeartDisease:        formatBool(row.HeartDisease),
			ShortnessOfBreath:   formatBool(row.ShortnessOfBreath),
			HighBloodPressure:   formatBool(row.HighBloodPressure),
			Smoking:             formatBool(row.Smoking),
			Diabetes:            formatBool(row.Diabetes),
			FamilyHistory:       formatBool(row.FamilyHistory),
			Workouts:            formatBool(row.Workouts),
			Medication:          formatBool(row.Medication),
			Alcohol:             formatBool(row.Alcohol),
			LastPhysical:        formatString(row.LastPhysical),
			ExerciseRestriction: formatString(row.ExerciseRestriction),
			Injuries:            buildInjuryChips(row),
			OtherInjuryDetails:  formatString(row.InjuriesOtherDetails),
			HadRecentInjury:     formatBool(row.HadRecentInjury),
			InjuryDetails:       formatString(row.InjuryDetails),
			PhysicianCleared:    formatBool(row.PhysicianCleared),
			ClearanceNotes:      formatString(row.ClearanceNotes),
		},
		Legal: opts.LegalCopy,
		LegalConfirmation: InitialsInfo{
			RiskInitials:            formatString(row.InitialsRiskAssumption),
			ReleaseInitials:         formatString(row.InitialsRelease),
			IndemnificationInitials: formatString(row.InitialsIndemnification),
			MediaInitials:           formatString(row.InitialsMediaRelease),
		},
		Signature: SignatureInfo{ImageDataURL: ""},
	}
}

// buildInjuryChips собирает список зон травм в фиксированном порядке.
// Порядок значим и не зависит от порядка полей в строке:
// Knees, Lower Back, Neck & Shoulders, Hip & Pelvis, затем условный Other.
func buildInjuryChips(row *entity.WaiverDocumentRow) []InjuryChip {
	boolValue := func(v *bool) bool { return v != nil && *v }

	chips := []InjuryChip{
		{Label: "Knees", Active: boolValue(row.InjuriesKnees)},
		{Label: "Lower Back", Active: boolValue(row.InjuriesLowerBack)},
		{Label: "Neck & Shoulders", Active: boolValue(row.InjuriesNeckShoulders)},
		{Label: "Hip & Pelvis", Active: boolValue(row.InjuriesHipPelvis)},
	}
	if boolValue(row.InjuriesOtherHas) {
		chips = append(chips, InjuryChip{Label: "Other", Active: true})
	}
	return chips
}

func formatString(v *string) string {
	if v == nil {
		return placeholder
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return placeholder
	}
	return trimmed
}

// formatPhone предпочитает мобильный номер домашнему
func formatPhone(cell, home *string) string {
	if s := formatString(cell); s != placeholder {
		return s
	}
	return formatString(home)
}

// formatCityStateZip склеивает город/штат/индекс в одну строку,
// пропуская отсутствующие части
func formatCityStateZip(city, state, zip *string) string {
	var parts []string
	for _, v := range []*string{city, state, zip} {
		if s := formatString(v); s != placeholder {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return placeholder
	}
	return strings.Join(parts, ", ")
}

// formatSignedAt берет время из аудита, иначе из самого вейвера
func formatSignedAt(row *entity.WaiverDocumentRow) string {
	if row.AuditCreatedAt != nil {
		return row.AuditCreatedAt.UTC().Format(time.RFC3339)
	}
	if row.SignedAtUTC != nil {
		return row.SignedAtUTC.UTC().Format(time.RFC3339)
	}
	return placeholder
}
