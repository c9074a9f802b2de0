package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RejectionError is a non-2xx answer from the API. Message holds the
// server-provided "error" text when the body carried one.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server rejected request: %d %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 rejection.
func (e *RejectionError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
