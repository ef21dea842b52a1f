package domain

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTokenMissing     = errors.New("token missing")
	ErrInvalidRole      = errors.New("invalid role")
	ErrAlreadyJoined    = errors.New("already joined")
	ErrConnectionClosed = errors.New("connection closed")
)
