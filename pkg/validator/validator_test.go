package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoss/relay/pkg/validator"
)

func TestValidateSignup(t *testing.T) {
	errs := validator.ValidateSignup("a@x.com", "alice", "password1")
	assert.False(t, errs.HasErrors())

	errs = validator.ValidateSignup("", "", "")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "user_name")
	assert.Contains(t, errs, "password")

	errs = validator.ValidateSignup("not-an-email", "alice", "password1")
	assert.Contains(t, errs, "email")

	errs = validator.ValidateSignup("a@x.com", "a b", "password1")
	assert.Contains(t, errs, "user_name")

	errs = validator.ValidateSignup("a@x.com", "alice", "short")
	assert.Contains(t, errs, "password")
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, validator.ValidateLogin("alice", "pw").HasErrors())
	assert.True(t, validator.ValidateLogin("", "pw").HasErrors())
	assert.True(t, validator.ValidateLogin("alice", "").HasErrors())
}

func TestValidateChangePassword(t *testing.T) {
	assert.False(t, validator.ValidateChangePassword("old", "newpassword", "newpassword").HasErrors())
	assert.True(t, validator.ValidateChangePassword("", "newpassword", "newpassword").HasErrors())
	assert.True(t, validator.ValidateChangePassword("old", "short", "short").HasErrors())
	assert.True(t, validator.ValidateChangePassword("old", "newpassword", "").HasErrors())
}
