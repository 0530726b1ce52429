package auth

import (
	"fmt"
)

// RegisterRequest creates a tenant together with its owner login.
type RegisterRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=1,max=255"`
	Slug         string `json:"slug" validate:"required,min=2,max=100"`
	OwnerName    string `json:"owner_name" validate:"required,min=1,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=8,max=20"`
	Password     string `json:"password" validate:"required,min=8"`
}

func (r RegisterRequest) Validate() error {
	if r.BusinessName == "" {
		return fmt.Errorf("business_name is required")
	}
	if r.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if r.OwnerName == "" {
		return fmt.Errorf("owner_name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
