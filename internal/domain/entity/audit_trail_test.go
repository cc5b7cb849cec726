package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIdentitySnapshot_TruncatedShape(t *testing.T) {
	snapshot := NewIdentitySnapshot("Jane Doe", "jane@example.com", "1990-05-12")

	assert.Equal(t, JSONMap{
		"full_name":     "Jane Doe",
		"email":         "jane@example.com",
		"date_of_birth": "1990-05-12",
	}, snapshot)

	// Снимок усеченный: адрес и телефоны туда не попадают
	assert.Len(t, snapshot, 3)
}
