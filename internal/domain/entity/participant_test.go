package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParticipant_MatchesPhone(t *testing.T) {
	participant := &Participant{
		CellPhone: strPtr("555-0101"),
		HomePhone: strPtr("555-0202"),
	}

	assert.True(t, participant.MatchesPhone("555-0101"))
	assert.True(t, participant.MatchesPhone("555-0202"))
	assert.False(t, participant.MatchesPhone("555-9999"))
}

func TestParticipant_MatchesPhone_NilPhones(t *testing.T) {
	participant := &Participant{}

	assert.False(t, participant.MatchesPhone("555-0101"))
	assert.False(t, participant.MatchesPhone(""))
}
