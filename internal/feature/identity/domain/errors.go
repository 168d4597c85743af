// Package domain defines domain-level errors for the identity feature.
package domain

import "errors"

// Domain errors for identity reconciliation.
// The distinction between ErrInvalidToken (client fault, 401) and
// ErrProviderNotConfigured (operator fault, 500) is deliberate and must be
// preserved by callers.
var (
	// ErrNoToken indicates the request carried no bearer token.
	ErrNoToken = errors.New("no token provided")

	// ErrInvalidToken indicates the external provider rejected the token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrProviderNotConfigured indicates the external provider credentials
	// are missing from the server configuration.
	ErrProviderNotConfigured = errors.New("identity provider is not configured on the server")

	// ErrNoEmail indicates the provider identity has no usable email.
	ErrNoEmail = errors.New("provider user has no email")
)
