package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserManagement/UserManagement/internal/api/validation"
	"github.com/GoUserManagement/UserManagement/internal/dto"
)

func TestValidate(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name string
		in   dto.CreateUser
		want map[string][]string
	}{
		{
			name: "valid",
			in:   dto.CreateUser{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			want: nil,
		},
		{
			name: "all missing",
			in:   dto.CreateUser{},
			want: map[string][]string{
				"firstName": {"The firstName field is required."},
				"lastName":  {"The lastName field is required."},
				"email":     {"The email field is required."},
			},
		},
		{
			name: "bad email",
			in:   dto.CreateUser{FirstName: "Ada", LastName: "Lovelace", Email: "not-an-email"},
			want: map[string][]string{
				"email": {"The email field is not a valid e-mail address."},
			},
		},
		{
			name: "too long",
			in:   dto.CreateUser{FirstName: strings.Repeat("a", 101), LastName: "Lovelace", Email: "ada@example.com"},
			want: map[string][]string{
				"firstName": {"The field firstName must be a string with a maximum length of 100."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateNonStruct(t *testing.T) {
	_, err := validation.New().Validate("nope")
	assert.Error(t, err)
}
