// Package validation provides request-level input checks applied before
// domain rules run.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"cryptowallet/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validator collects field-level validation errors.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

func (v *Validator) LengthBetween(field, value string, min, max int) {
	v.Check(len(value) >= min && len(value) <= max,
		field, fmt.Sprintf("must be between %d and %d characters long", min, max))
}

func (v *Validator) MinLength(field, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must be at most %d characters long", n))
}

// UserRegistration applies the registration rules: valid email, username
// 3-50 characters, password at least 8, names at most 100.
func (v *Validator) UserRegistration(input *models.RegisterUserInput) {
	v.Email("email", input.Email)
	v.LengthBetween("username", input.Username, 3, 50)
	v.MinLength("password", input.Password, 8)
	v.MaxLength("first_name", input.FirstName, 100)
	v.MaxLength("last_name", input.LastName, 100)
}

// First returns an arbitrary single error message for compact responses.
func (v *Validator) First() string {
	for field, msg := range v.Errors {
		return fmt.Sprintf("%s %s", field, msg)
	}
	return ""
}
