package session

import "errors"

var (
	ErrInvalidSessionID    = errors.New("invalid session id")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNotAuthenticated    = errors.New("not authenticated")
)
