package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrMrXTaken       = errors.New("mr. x is already taken in this game")
	ErrNameRequired   = errors.New("name is required")

	// Position errors
	ErrInvalidPosition = errors.New("position must be two finite coordinates")

	// Chat errors
	ErrMessageRequired = errors.New("message is required")
	ErrSenderRequired  = errors.New("sender name is required")
	ErrDetectivesOnly  = errors.New("only detectives can use the detectives chat")

	// Boundary errors
	ErrBoundaryNotFound = errors.New("no boundary configured for this game")
	ErrInvalidBoundary  = errors.New("boundary must contain at least one polygon feature")
)
