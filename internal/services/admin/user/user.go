package user

import (
	"strings"

	apperrors "github.com/louisbranch/adminpanel/internal/platform/errors"
)

// User is a record of the remote users collection.
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Draft is unsaved new-user input before the server assigns an identifier.
type Draft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsEmpty reports whether the draft holds no input.
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.Email == ""
}

// Validate reports blank fields as validation errors.
func (d Draft) Validate() error {
	return validateFields(d.Name, d.Email)
}

// Validate reports a missing identifier or blank fields.
func (u User) Validate() error {
	if u.ID.IsZero() {
		return apperrors.New(apperrors.CodeUserIDEmpty, "user id is required")
	}
	return validateFields(u.Name, u.Email)
}

func validateFields(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.New(apperrors.CodeUserNameEmpty, "name is required")
	}
	if strings.TrimSpace(email) == "" {
		return apperrors.New(apperrors.CodeUserEmailEmpty, "email is required")
	}
	return nil
}
