package usecase

import (
	"errors"
	"net/http"
)

// DomainError é uma recusa da própria requisição, antes de qualquer chamada ao WAHA.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "unauthorized",
		Status:  http.StatusUnauthorized,
	}
	ErrMissingField = &DomainError{
		Code:    "MISSING_FIELD",
		Message: "missing to or text",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidDestination = &DomainError{
		Code:    "INVALID_DESTINATION",
		Message: "invalid phone",
		Status:  http.StatusBadRequest,
	}
)

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// ForwardError carrega o status e o corpo que o WAHA devolveu, ou 500 quando nem houve resposta.
type ForwardError struct {
	Status int
	Detail any
	Err    error
}

func (e *ForwardError) Error() string {
	return "forward_failed: " + e.Err.Error()
}

func (e *ForwardError) Unwrap() error {
	return e.Err
}

func IsForwardError(err error) bool {
	var fe *ForwardError
	return errors.As(err, &fe)
}
