package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func joinValidationErrors(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return &DomainError{Code: "VALIDATION_ERROR", Message: strings.TrimSuffix(msg, ", ")}
}

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

func ValidateBankDetailsInput(input BankDetailsInput) []ValidationError {
	var errors []ValidationError

	if len(strings.TrimSpace(input.AccountHolderName)) < 2 {
		errors = append(errors, ValidationError{"accountHolderName", "must have at least 2 characters"})
	}
	if len(input.AccountNumber) < 8 {
		errors = append(errors, ValidationError{"accountNumber", "must have at least 8 digits"})
	}
	if strings.TrimSpace(input.BankName) == "" {
		errors = append(errors, ValidationError{"bankName", "is required"})
	}
	if !ifscPattern.MatchString(input.IFSCCode) {
		errors = append(errors, ValidationError{"ifscCode", "must match XXXX0XXXXXX"})
	}
	if input.AccountType != "savings" && input.AccountType != "current" {
		errors = append(errors, ValidationError{"accountType", "must be savings or current"})
	}

	return errors
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}
	if input.ServiceType == "" {
		errors = append(errors, ValidationError{"serviceType", "is required"})
	}
	if input.Value < 0 {
		errors = append(errors, ValidationError{"value", "must be non-negative"})
	}

	return errors
}

func ValidateCreditCheckRequest(req CreditCheckRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.PAN) == "" {
		errors = append(errors, ValidationError{"pan", "is required"})
	}
	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	return errors
}
