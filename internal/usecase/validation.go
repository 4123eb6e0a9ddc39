package usecase

import (
	"net/mail"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

func validateEmail(errors ValidationErrors, email string) ValidationErrors {
	if strings.TrimSpace(email) == "" {
		return append(errors, ValidationError{"email", "is required"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return append(errors, ValidationError{"email", "is invalid"})
	}
	return errors
}

func ValidateRegisterInput(input RegisterInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	errors = validateEmail(errors, input.Email)

	if input.Password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	} else if len(input.Password) < 6 {
		errors = append(errors, ValidationError{"password", "must have at least 6 characters"})
	}

	if input.Role != "" && !input.Role.Valid() {
		errors = append(errors, ValidationError{"role", "must be admin or telecaller"})
	}

	return errors
}

func ValidateLoginInput(input LoginInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if input.Password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	}

	return errors
}

func ValidateCreateLeadInput(input CreateLeadInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	errors = validateEmail(errors, input.Email)

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Address) == "" {
		errors = append(errors, ValidationError{"address", "is required"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 13
}
