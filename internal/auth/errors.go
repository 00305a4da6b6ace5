package auth

import "errors"

var (
	// ErrInvalidToken is returned when the provided bearer token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidAPIKey is returned when the provided API key is unknown or expired
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrRelayerInactive is returned when the key's relayer has been deactivated
	ErrRelayerInactive = errors.New("relayer is not active")
)
