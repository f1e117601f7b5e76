package engine

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds       = errors.New("out of bounds")
	ErrCellOccupied      = errors.New("cell occupied")
	ErrSlotEmpty         = errors.New("slot empty")
	ErrInvalidSlot       = errors.New("invalid slot index")
	ErrSessionNotPlaying = errors.New("session not playing")
	ErrTrayNotEmpty      = errors.New("tray not empty")
)

// RejectedError describes why a placement was refused. It matches its
// Reason with errors.Is.
type RejectedError struct {
	Reason error
	At     *Position // offending cell, for bounds/occupancy rejections
}

func (e *RejectedError) Error() string {
	if e.At != nil {
		return fmt.Sprintf("placement rejected: %v at (%d,%d)", e.Reason, e.At.X, e.At.Y)
	}
	return fmt.Sprintf("placement rejected: %v", e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Reason
}

func reject(reason error, x, y int) *RejectedError {
	return &RejectedError{Reason: reason, At: &Position{X: x, Y: y}}
}

func rejectReason(reason error) *RejectedError {
	return &RejectedError{Reason: reason}
}
