package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_Handle(t *testing.T) {
	type form struct {
		Handle string `validate:"handle"`
	}

	tests := []struct {
		name   string
		handle string
		valid  bool
	}{
		{"plain", "serennabatth", true},
		{"with at prefix", "@serennabatth", true},
		{"underscores and digits", "reader_42", true},
		{"too short", "a", false},
		{"spaces", "not a handle", false},
		{"punctuation", "who?me", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(form{Handle: tt.handle})
			if tt.valid {
				assert.Nil(t, details)
			} else {
				assert.NotEmpty(t, details)
			}
		})
	}
}

func TestValidateStruct_PasswordStrength(t *testing.T) {
	type form struct {
		Password string `validate:"password_strength"`
	}

	assert.Nil(t, ValidateStruct(form{Password: "Sup3rSecret"}))
	assert.NotEmpty(t, ValidateStruct(form{Password: "short1A"}))
	assert.NotEmpty(t, ValidateStruct(form{Password: "alllowercase1"}))
	assert.NotEmpty(t, ValidateStruct(form{Password: "NoDigitsHere"}))
}

func TestValidateStruct_RequiredFieldMessage(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
	}

	details := ValidateStruct(form{})
	require.Len(t, details, 1)
	assert.Equal(t, "Email", details[0].Field)
	assert.Equal(t, "Email is required", details[0].Message)
}
