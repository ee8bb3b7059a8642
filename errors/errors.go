package errors

import "fmt"

var (
	ErrUpstreamFailure      = fmt.Errorf("response engine failure")
	ErrProfileNotFound      = fmt.Errorf("profile not found")
	ErrProfileAlreadyExists = fmt.Errorf("profile already exists")
	ErrMissingAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrMalformedAuthHeader  = fmt.Errorf("authorization header must be 'Bearer <token>'")
	ErrInvalidToken         = fmt.Errorf("invalid or expired token")
	ErrTokenGeneration      = fmt.Errorf("token generation failed")
	ErrInvalidProviderToken = fmt.Errorf("provider token rejected")
	ErrInvalidProfile       = fmt.Errorf("invalid profile data")
	ErrEmptyWords           = fmt.Errorf("no words have been found")
)
