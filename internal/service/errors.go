// Package service holds the account, authentication and tag logic. It sits
// between the HTTP handlers and the repositories and owns every validation
// and access rule.
package service

import "fmt"

// ValidationError reports malformed, missing or conflicting input. Handlers
// translate it into HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// AuthenticationError reports bad credentials or an unusable token. The
// message is safe to show to clients and never says which part was wrong.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

var (
	errBadCredentials = &AuthenticationError{Message: "unable to authenticate with provided credentials"}
	errInvalidToken   = &AuthenticationError{Message: "invalid token"}
	errNoIdentity     = &AuthenticationError{Message: "authentication credentials were not provided"}
)
