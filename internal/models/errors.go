package models

import "errors"

// Application-wide standard errors
var (
	// Resource errors
	ErrNotFound         = errors.New("resource not found")
	ErrProgressNotFound = errors.New("saved progress not found")
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrNoActiveSession  = errors.New("no active game session")

	// Gameplay / persistence policy errors
	ErrMissingCharacterData = errors.New("saved progress has no character data")
	ErrObjectiveAlreadyDone = errors.New("objective already completed for this chapter")
	ErrNoCharacterSelected  = errors.New("no character selected")
	ErrEmptyProfileName     = errors.New("profile name must not be empty")

	// Authentication errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// General request/server errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
