package validation

import (
	"regexp"
	"strings"
)

// PasswordMinLength is the minimum accepted password length.
const PasswordMinLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegistrationDraft is the sanitized registration submission.
type RegistrationDraft struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginDraft is the sanitized login submission.
type LoginDraft struct {
	Email    string
	Password string
}

// NormalizeEmail trims and lowercases an email value.
func NormalizeEmail(value any) string {
	return strings.ToLower(toText(value))
}

// ValidateRegistrationPayload checks a raw registration payload, returning
// the sanitized draft and every violated rule.
func ValidateRegistrationPayload(payload map[string]any) (RegistrationDraft, FieldErrors) {
	errors := FieldErrors{}

	firstName := toText(payload["firstName"])
	lastName := toText(payload["lastName"])
	email := NormalizeEmail(payload["email"])
	password, _ := payload["password"].(string)

	if len([]rune(firstName)) < 2 {
		errors["firstName"] = "first name must be at least 2 characters long"
	}
	if len([]rune(lastName)) < 2 {
		errors["lastName"] = "last name must be at least 2 characters long"
	}
	if !emailPattern.MatchString(email) {
		errors["email"] = "enter a valid email address"
	}
	if len(password) < PasswordMinLength {
		errors["password"] = "password must be at least 8 characters long"
	}

	return RegistrationDraft{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}, errors
}

// ValidateLoginPayload checks a raw login payload, returning the sanitized
// draft and every violated rule.
func ValidateLoginPayload(payload map[string]any) (LoginDraft, FieldErrors) {
	errors := FieldErrors{}

	email := NormalizeEmail(payload["email"])
	password, _ := payload["password"].(string)

	if !emailPattern.MatchString(email) {
		errors["email"] = "enter a valid email address"
	}
	if len(password) < PasswordMinLength {
		errors["password"] = "password must be at least 8 characters long"
	}

	return LoginDraft{Email: email, Password: password}, errors
}
