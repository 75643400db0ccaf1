package validation

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	minNomLength      = 2
	maxNomLength      = 100
)

// SignupForm carries the raw signup fields before submission to the
// identity provider.
type SignupForm struct {
	Nom                    string
	Email                  string
	MotDePasse             string
	ConfirmationMotDePasse string
}

// ValidateEmail returns an error message, or "" when valid.
func ValidateEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email is required"
	}
	if validate.Var(email, "email") != nil {
		return "Please enter a valid email address"
	}
	return ""
}

// ValidateNom checks the display-name field.
func ValidateNom(nom string) string {
	trimmed := strings.TrimSpace(nom)
	if trimmed == "" {
		return "Full name is required"
	}
	if len(trimmed) < minNomLength {
		return fmt.Sprintf("Name must be at least %d characters", minNomLength)
	}
	if len(nom) > maxNomLength {
		return fmt.Sprintf("Name must not exceed %d characters", maxNomLength)
	}
	return ""
}

// ValidatePassword enforces length plus upper/lower/digit content.
func ValidatePassword(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < minPasswordLength {
		return fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Sprintf("Password must not exceed %d characters", maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasUpper {
		return "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return "Password must contain at least one number"
	}
	return ""
}

// ValidatePasswordConfirmation checks the confirmation matches.
func ValidatePasswordConfirmation(password, confirmation string) string {
	if confirmation == "" {
		return "Password confirmation is required"
	}
	if password != confirmation {
		return "Passwords do not match"
	}
	return ""
}

// ValidateSignupForm returns a field-name → message map, empty when the
// whole form is valid.
func ValidateSignupForm(form SignupForm) map[string]string {
	errs := make(map[string]string)

	if msg := ValidateNom(form.Nom); msg != "" {
		errs["nom"] = msg
	}
	if msg := ValidateEmail(form.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := ValidatePassword(form.MotDePasse); msg != "" {
		errs["motDePasse"] = msg
	}
	if msg := ValidatePasswordConfirmation(form.MotDePasse, form.ConfirmationMotDePasse); msg != "" {
		errs["confirmationMotDePasse"] = msg
	}
	return errs
}
