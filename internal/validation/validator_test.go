package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cryptowallet/internal/models"
)

func validRegistration() models.RegisterUserInput {
	return models.RegisterUserInput{
		Email:     "ana@example.com",
		Username:  "ana",
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "Lopez",
	}
}

func TestUserRegistration(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.RegisterUserInput)
		wantField string
	}{
		{name: "valid input", mutate: func(*models.RegisterUserInput) {}},
		{name: "bad email", mutate: func(in *models.RegisterUserInput) { in.Email = "not-an-email" }, wantField: "email"},
		{name: "username too short", mutate: func(in *models.RegisterUserInput) { in.Username = "ab" }, wantField: "username"},
		{name: "username too long", mutate: func(in *models.RegisterUserInput) { in.Username = strings.Repeat("a", 51) }, wantField: "username"},
		{name: "password too short", mutate: func(in *models.RegisterUserInput) { in.Password = "short" }, wantField: "password"},
		{name: "first name too long", mutate: func(in *models.RegisterUserInput) { in.FirstName = strings.Repeat("x", 101) }, wantField: "first_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegistration()
			tt.mutate(&input)

			v := New()
			v.UserRegistration(&input)

			if tt.wantField == "" {
				assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
			} else {
				assert.False(t, v.Valid())
				assert.Contains(t, v.Errors, tt.wantField)
				assert.NotEmpty(t, v.First())
			}
		})
	}
}

func TestAddErrorKeepsFirstMessage(t *testing.T) {
	v := New()
	v.AddError("email", "first")
	v.AddError("email", "second")
	assert.Equal(t, "first", v.Errors["email"])
}

func TestRequired(t *testing.T) {
	v := New()
	v.Required("name", "  ")
	assert.False(t, v.Valid())

	v = New()
	v.Required("name", "bob")
	assert.True(t, v.Valid())
}
