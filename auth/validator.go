package auth

import (
	"baro-server/domain"
	serrors "baro-server/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateSignUp checks the business rules of a signup payload.
func ValidateSignUp(req domain.SignUpRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", serrors.ErrInvalidProfile, err)
	}
	return nil
}

// ValidateProfileUpdate checks the business rules of a partial update.
// An empty payload is valid: the update becomes a no-op read.
func ValidateProfileUpdate(req domain.ProfileUpdateRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", serrors.ErrInvalidProfile, err)
	}
	return nil
}
