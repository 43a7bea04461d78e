package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"admin@esprit.tn",
		"club.robotique@esprit.tn",
		"user+tag@example.com",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@esprit.tn",
		"spaces in@esprit.tn",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("123456"))
	assert.True(t, ValidatePassword("un-mot-de-passe-long"))
	assert.False(t, ValidatePassword("12345"))
	assert.False(t, ValidatePassword(""))
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, ValidateRequired("x"))
	assert.False(t, ValidateRequired(""))
	assert.False(t, ValidateRequired("   "))
}
