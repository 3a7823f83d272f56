package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("maria@example.com", "Maria", "hashed-secret")
	assert.NoError(t, err)
	assert.Equal(t, "maria@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestNewUser_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		uname string
		hash  string
		field string
	}{
		{"bad email", "not-an-email", "Maria", "hash", "email"},
		{"empty name", "maria@example.com", " ", "hash", "name"},
		{"empty hash", "maria@example.com", "Maria", "", "password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.email, tc.uname, tc.hash)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "quartos-perto-do-campus", Slugify("Quartos Perto do Campus"))
	assert.Equal(t, "kitnet", Slugify("Kitnet"))
}

func TestNewCategory_DefaultsSlug(t *testing.T) {
	c, err := NewCategory("Vagas em República", "", "shared housing")
	assert.NoError(t, err)
	assert.NotEmpty(t, c.Slug)
	assert.Equal(t, Slugify("Vagas em República"), c.Slug)
}
