package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrCouponInvalid = errors.New("invalid coupon code")
	ErrEmptyCode     = errors.New("coupon code is empty")
)

// APIError is a non-2xx answer from the backend. Detail carries the
// backend's human readable message verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// Temporary reports whether the failure is on the backend's side.
func (e *APIError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// Detail returns the message to show the shopper for err: the backend's own
// detail when there is one, fallback otherwise.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return e
	}
	var msg string
	if err := json.Unmarshal(payload.Detail, &msg); err == nil {
		e.Detail = msg
		return e
	}
	// validation errors come back as a list; keep them as raw JSON
	e.Detail = string(payload.Detail)
	return e
}
