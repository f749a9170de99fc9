package users

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateRegister checks the registration payload beyond binding: the
// userId must look like an email, the password must carry some length and
// the display name must not be blank.
func ValidateRegister(req *UserRegisterRequest) error {
	if !emailRegex.MatchString(req.UserID) {
		return fmt.Errorf("userId must be a valid email address")
	}
	if len(req.UserPassword) < 4 {
		return fmt.Errorf("userPassword must be at least 4 characters")
	}
	if strings.TrimSpace(req.UserName) == "" {
		return fmt.Errorf("userName must not be blank")
	}
	return nil
}

// ValidatePasswordChange checks the replacement credential.
func ValidatePasswordChange(req *PasswordChangeRequest) error {
	if len(req.NewPassword) < 4 {
		return fmt.Errorf("newPassword must be at least 4 characters")
	}
	if req.NewPassword == req.CurrentPassword {
		return fmt.Errorf("newPassword must differ from the current password")
	}
	return nil
}
