package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmergencyContact_IsEmpty(t *testing.T) {
	testCases := []struct {
		name     string
		contact  EmergencyContact
		expected bool
	}{
		{"ВсеNil", EmergencyContact{}, true},
		{"ТолькоПробелы", EmergencyContact{
			Name:  strPtr("   "),
			Phone: strPtr("\t"),
		}, true},
		{"ЗаполненоИмя", EmergencyContact{Name: strPtr("John Doe")}, false},
		{"ЗаполненТолькоТелефон", EmergencyContact{Phone: strPtr("555-0303")}, false},
		{"ЗаполненТолькоEmail", EmergencyContact{Email: strPtr("next@example.com")}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.contact.IsEmpty())
		})
	}
}
