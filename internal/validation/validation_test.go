package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodica-app/melodica/internal/common"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@x.com", true},
		{"user.name@music.example.org", true},
		{"", false},
		{"plainaddress", false},
		{"no@tld", false},
		{"has space@x.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"DJ Cool-Cat 99", true},
		{"", false},
		{"bad!name", false},
		{"under_score", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidUsername(tt.username), "username %q", tt.username)
	}
}

func TestStruct_CustomTags(t *testing.T) {
	type in struct {
		Email    string `validate:"required,email_shape"`
		Username string `validate:"required,username_chars"`
	}

	va := New()

	require.NoError(t, va.Struct(in{Email: "a@x.com", Username: "alice"}))

	err := va.Struct(in{Email: "nope", Username: "bad!"})
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "username may only contain")
}

func TestStruct_EqfieldAndMin(t *testing.T) {
	type in struct {
		Password string `validate:"required,min=6"`
		Confirm  string `validate:"required,eqfield=Password"`
	}

	va := New()

	err := va.Struct(in{Password: "abc", Confirm: "xyz"})
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "at least 6 characters")
	assert.Contains(t, err.Error(), "passwords do not match")
}
