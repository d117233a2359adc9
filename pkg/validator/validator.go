package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var userNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateSignup(email, userName, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	} else if len(email) > 260 {
		errs.Add("email", "Email must be at most 260 characters")
	}

	userName = strings.TrimSpace(userName)
	if userName == "" {
		errs.Add("user_name", "Username is required")
	} else if len(userName) < 3 {
		errs.Add("user_name", "Username must be at least 3 characters")
	} else if len(userName) > 260 {
		errs.Add("user_name", "Username must be at most 260 characters")
	} else if !userNameRegex.MatchString(userName) {
		errs.Add("user_name", "Username may only contain letters, digits, underscores and hyphens")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	}

	return errs
}

func ValidateLogin(userName, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(userName) == "" {
		errs.Add("user_name", "Username is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateChangePassword(current, newPassword, confirm string) ValidationErrors {
	errs := make(ValidationErrors)

	if current == "" {
		errs.Add("current_password", "Current password is required")
	}
	if newPassword == "" {
		errs.Add("new_password", "New password is required")
	} else if len(newPassword) < 8 {
		errs.Add("new_password", "New password must be at least 8 characters")
	}
	if confirm == "" {
		errs.Add("confirm_password", "Confirm password is required")
	}

	return errs
}
