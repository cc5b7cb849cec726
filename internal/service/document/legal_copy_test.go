package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLegalCopy_LocaleFallback(t *testing.T) {
	tests := []struct {
		locale    string
		wantTitle string
	}{
		{"en", "Release"},
		{"en-US", "Release"},
		{"es", "Liberación"},
		{"es-MX", "Liberación"},
		// Неизвестный регион известного языка падает до базового языка
		{"es-AR", "Liberación"},
		// Неизвестный язык падает до английского
		{"fr", "Release"},
		{"", "Release"},
	}

	for _, tt := range tests {
		t.Run("locale "+tt.locale, func(t *testing.T) {
			copyForLocale := GetLegalCopy(tt.locale)
			assert.Equal(t, tt.wantTitle, copyForLocale.Release.Title)
		})
	}
}

func TestYesNoWords_Fallback(t *testing.T) {
	en := yesNoWords("en")
	assert.Equal(t, [2]string{"Yes", "No"}, en)

	es := yesNoWords("es-MX")
	assert.Equal(t, [2]string{"Sí", "No"}, es)

	unknown := yesNoWords("de")
	assert.Equal(t, [2]string{"Yes", "No"}, unknown)
}
