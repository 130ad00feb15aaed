package auth

import (
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	AccessToken           string  `json:"access_token"`
	RefreshToken          string  `json:"-"`
	AccessTokenExpiresIn  int64   `json:"access_token_expires_in"`
	RefreshTokenExpiresIn int64   `json:"-"`
	UserID                string  `json:"user_id"`
	FullName              string  `json:"full_name"`
	Role                  string  `json:"role"`
	Team                  string  `json:"team,omitempty"`
	RequiredHours         float64 `json:"required_hours"`
}
