package core

import "errors"

// Error codes for domain errors, used as machine-readable values in API
// error responses.
const (
	ErrCodeClassroomNotFound = "classroom_not_found"
	ErrCodeClassroomExists   = "classroom_exists"
	ErrCodeAlreadyJoined     = "already_joined"
	ErrCodeStudentNotFound   = "student_not_found"
	ErrCodeNameRequired      = "name_required"
	ErrCodeUnknownSignalType = "unknown_signal_type"
	ErrCodeInternal          = "internal"
)

var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrClassroomExists   = errors.New("classroom already exists")
	ErrAlreadyJoined     = errors.New("student already in class")
	ErrStudentNotFound   = errors.New("student not in class")
	ErrNameRequired      = errors.New("name required")
	ErrUnknownSignalType = errors.New("cannot send that kind of signal")
)

// Code maps a domain error to its wire code.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrClassroomNotFound):
		return ErrCodeClassroomNotFound
	case errors.Is(err, ErrClassroomExists):
		return ErrCodeClassroomExists
	case errors.Is(err, ErrAlreadyJoined):
		return ErrCodeAlreadyJoined
	case errors.Is(err, ErrStudentNotFound):
		return ErrCodeStudentNotFound
	case errors.Is(err, ErrNameRequired):
		return ErrCodeNameRequired
	case errors.Is(err, ErrUnknownSignalType):
		return ErrCodeUnknownSignalType
	default:
		return ErrCodeInternal
	}
}
